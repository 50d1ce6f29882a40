// Package filter narrows extracted result lists.
//
// Filters match on club and country (case-insensitive substring match),
// placing, and whether the competitor finished:
//
//	f := filter.NewFilter()
//	f.Countries = []string{"GBR"}
//	f.MaxRank = 8
//
//	filtered := f.Apply(results)
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/result"
)

// Filter represents result filtering criteria
type Filter struct {
	// Club filtering (case-insensitive substring match)
	Clubs []string `json:"clubs,omitempty"`

	// Country filtering (case-insensitive exact match on the code)
	Countries []string `json:"countries,omitempty"`

	// MaxRank keeps placings up to and including this rank; 0 disables it.
	MaxRank int `json:"max_rank,omitempty"`

	// FinishedOnly drops competitors without a real placing.
	FinishedOnly bool `json:"finished_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{
		Clubs:     []string{},
		Countries: []string{},
	}
}

// Parse builds a filter from comma-separated club and country lists.
func Parse(clubs, countries string, maxRank int, finishedOnly bool) (*Filter, error) {
	if maxRank < 0 {
		return nil, fmt.Errorf("max rank must not be negative, got %d", maxRank)
	}
	f := NewFilter()
	f.Clubs = splitList(clubs)
	f.Countries = splitList(countries)
	f.MaxRank = maxRank
	f.FinishedOnly = finishedOnly
	return f, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Clubs) == 0 &&
		len(f.Countries) == 0 &&
		f.MaxRank == 0 &&
		!f.FinishedOnly
}

// Matches checks if a result passes every active criterion. An empty
// filter matches everything.
func (f *Filter) Matches(r result.Result) bool {
	if f.FinishedOnly && !r.Finished() {
		return false
	}
	if f.MaxRank > 0 && r.Rank > f.MaxRank {
		return false
	}

	if len(f.Clubs) > 0 {
		matched := false
		clubLower := strings.ToLower(r.Club)
		for _, club := range f.Clubs {
			if strings.Contains(clubLower, strings.ToLower(club)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Countries) > 0 {
		matched := false
		for _, country := range f.Countries {
			if strings.EqualFold(r.Country, country) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the matching results. An empty filter returns results
// unchanged.
func (f *Filter) Apply(results []result.Result) []result.Result {
	if f.IsEmpty() {
		return results
	}

	filtered := []result.Result{}
	for _, r := range results {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: "Clubs: Salle Dublin | Countries: IRL | Top 8 | Finished only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if len(f.Clubs) > 0 {
		parts = append(parts, fmt.Sprintf("Clubs: %s", strings.Join(f.Clubs, ", ")))
	}
	if len(f.Countries) > 0 {
		parts = append(parts, fmt.Sprintf("Countries: %s", strings.Join(f.Countries, ", ")))
	}
	if f.MaxRank > 0 {
		parts = append(parts, fmt.Sprintf("Top %d", f.MaxRank))
	}
	if f.FinishedOnly {
		parts = append(parts, "Finished only")
	}
	return strings.Join(parts, " | ")
}
