package extract

import (
	"errors"
	"fmt"
)

// ErrNoTableFound is returned when no results region can be bounded in a
// page, or the region has no usable structure. It is fatal for the run.
var ErrNoTableFound = errors.New("no results table found")

// RefetchError reports that the fetched page is a frameset shell and the
// results must be fetched from URL before extraction can proceed.
type RefetchError struct {
	URL string
}

func (e *RefetchError) Error() string {
	return fmt.Sprintf("page is a frameset, results are at %s", e.URL)
}
