package extract

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/variant"
)

// Region is the bounded span of a page holding just the results table.
// It is always a strict substring of the page it was located in.
type Region struct {
	text   string
	marker string
}

// Text returns the raw region text.
func (r Region) Text() string {
	return r.text
}

// Marker returns the start marker that matched.
func (r Region) Marker() string {
	return r.marker
}

// Locate isolates the results region of page for variant v.
//
// The web-archive toolbar is skipped first. The variant's start markers are
// then tried in order and the first present one is bounded at the next end
// marker. When no marker pair matches, Locate returns ErrNoTableFound rather
// than the whole page.
func Locate(page string, v variant.Variant) (Region, error) {
	page = stripWayback(page)

	for _, marker := range v.Markers {
		start := indexFold(page, marker)
		if start < 0 {
			continue
		}
		rest := page[start:]
		end := indexFold(rest[len(marker):], v.EndMarker)
		if v.EndMarker == "" || end < 0 {
			continue
		}
		text := rest[:len(marker)+end]

		if v.Layout == variant.LayoutJSON {
			open := strings.Index(text, "[")
			if open < 0 {
				continue
			}
			text = text[open:]
		}
		return Region{text: text, marker: marker}, nil
	}

	return Region{}, fmt.Errorf("%w for %s", ErrNoTableFound, v.Name)
}

// FramesetTarget reports whether page is a frameset shell for variant v and,
// if so, the URL the results must be refetched from: the variant's results
// page appended to pageURL, with a single separating slash. An empty pageURL
// yields the results page alone.
func FramesetTarget(pageURL, page string, v variant.Variant) (string, bool) {
	if v.Frameset == nil || !containsFold(page, v.Frameset.Indicator) {
		return "", false
	}
	if pageURL == "" {
		return v.Frameset.Page, true
	}
	if !strings.HasSuffix(pageURL, "/") {
		pageURL += "/"
	}
	return pageURL + v.Frameset.Page, true
}
