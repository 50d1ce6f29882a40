package result

import (
	"fmt"
	"strings"
)

// SentinelRank marks a competitor who did not finish, did not start or whose
// rank could not be read.
const SentinelRank = 9999

// Result represents one ranked competitor extracted from a results page
type Result struct {
	Rank      int    `json:"rank"`
	Surname   string `json:"surname"`
	Forename  string `json:"forename"`
	Club      string `json:"club"`
	Country   string `json:"country"`
	Points    int    `json:"points"`
	BirthYear int    `json:"birth_year,omitempty"`
}

// New creates a Result from raw field text. The rank token is sanitized and
// points are derived from it; callers never set points directly.
func New(rawRank, surname, forename, club, country string) Result {
	rank := SanitizeRank(rawRank)
	return Result{
		Rank:     rank,
		Surname:  strings.TrimSpace(surname),
		Forename: strings.TrimSpace(forename),
		Club:     strings.TrimSpace(club),
		Country:  strings.TrimSpace(country),
		Points:   PointsFor(rank),
	}
}

// WithBirthYear returns a copy of r carrying the given year of birth.
func (r Result) WithBirthYear(year int) Result {
	r.BirthYear = year
	return r
}

// Finished reports whether the competitor has a real placing.
func (r Result) Finished() bool {
	return r.Rank != SentinelRank
}

// FullName returns "Forename Surname", skipping empty halves.
func (r Result) FullName() string {
	return strings.TrimSpace(r.Forename + " " + r.Surname)
}

// String renders the result on one line, mainly for logs and test failures.
func (r Result) String() string {
	return fmt.Sprintf("%d %s, %s (%s/%s) %dpts", r.Rank, r.Surname, r.Forename, r.Club, r.Country, r.Points)
}
