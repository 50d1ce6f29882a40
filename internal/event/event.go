package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/fencing-results/internal/extract"
	"github.com/pfrederiksen/fencing-results/internal/result"
)

// ErrCategoryMismatch is returned when more category ids are supplied than
// the index page lists.
var ErrCategoryMismatch = errors.New("category ids do not match index")

// Event identifies one dated competition in the results database.
type Event struct {
	ID   int       `json:"id"`
	Year int       `json:"year"`
	Date time.Time `json:"date"`
}

// New creates an Event. A zero year is taken from the date.
func New(id, year int, date time.Time) (Event, error) {
	if id <= 0 {
		return Event{}, fmt.Errorf("event id must be positive, got %d", id)
	}
	if date.IsZero() {
		return Event{}, errors.New("event date is required")
	}
	if year == 0 {
		year = date.Year()
	}
	return Event{ID: id, Year: year, Date: date}, nil
}

// Category is one competition listed on an event index page.
type Category struct {
	// Position is the zero-based order among linked entries on the index.
	Position int    `json:"position"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	// ID is the age category id assigned by the caller; 0 means excluded.
	ID int `json:"category_id"`
}

// CategoryResults holds the extraction output for one category.
type CategoryResults struct {
	Category Category        `json:"category"`
	Results  []result.Result `json:"results"`
	Report   extract.Report  `json:"-"`
}

// ParseCategoryIDs reads a comma-separated id list such as "26,0,12".
func ParseCategoryIDs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("no category ids given")
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid category id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Assign pairs categories with ids by position and returns those with a
// non-zero id. Categories beyond the end of ids are excluded.
func Assign(cats []Category, ids []int) ([]Category, error) {
	if len(ids) > len(cats) {
		return nil, fmt.Errorf("%w: %d ids for %d categories", ErrCategoryMismatch, len(ids), len(cats))
	}
	selected := make([]Category, 0, len(cats))
	for i, c := range cats {
		if i >= len(ids) || ids[i] == 0 {
			continue
		}
		c.ID = ids[i]
		selected = append(selected, c)
	}
	return selected, nil
}

// FromCSV splits a legacy delimited export into categories, one per block,
// and keeps the blocks whose positional id is non-zero.
func FromCSV(raw, location string, ids []int) ([]CategoryResults, error) {
	blocks, err := extract.ExtractCSV(raw)
	if err != nil {
		return nil, err
	}
	cats := make([]Category, len(blocks))
	for i := range blocks {
		cats[i] = Category{Position: i, Name: fmt.Sprintf("block %d", i+1), URL: location}
	}
	selected, err := Assign(cats, ids)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResults, 0, len(selected))
	for _, c := range selected {
		results := blocks[c.Position]
		out = append(out, CategoryResults{
			Category: c,
			Results:  results,
			Report:   extract.Report{Variant: "csv", Rows: len(results)},
		})
	}
	return out, nil
}
