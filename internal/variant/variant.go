package variant

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownVariant is returned by Lookup for names that are not registered.
var ErrUnknownVariant = errors.New("unknown source variant")

// EmptyCell is the placeholder the row extractor substitutes for a cell that
// renders nothing, so that positions still line up with the header.
const EmptyCell = "-"

// Layout selects how a table row is split into cells
type Layout int

const (
	// LayoutLines splits cells on line breaks (one cell per source line).
	LayoutLines Layout = iota
	// LayoutTagged splits cells at every tag boundary.
	LayoutTagged
	// LayoutJSON reads an embedded JSON athlete array instead of a table.
	LayoutJSON
	// LayoutCSV reads delimited text blocks.
	LayoutCSV
)

func (l Layout) String() string {
	switch l {
	case LayoutLines:
		return "lines"
	case LayoutTagged:
		return "tagged"
	case LayoutJSON:
		return "json"
	case LayoutCSV:
		return "csv"
	}
	return "unknown"
}

// NameStrategy selects how the name cell(s) become surname and forename
type NameStrategy int

const (
	// NamesSeparate reads surname and forename from their own columns.
	NamesSeparate NameStrategy = iota
	// NamesCommaOrCase splits "SURNAME Forename" or "Surname, Forename".
	NamesCommaOrCase
	// NamesTrailingToken takes the last word as surname.
	NamesTrailingToken
	// NamesVerbatim applies the comma-or-case split to a single combined
	// name field taken verbatim from structured data.
	NamesVerbatim
)

func (s NameStrategy) String() string {
	switch s {
	case NamesSeparate:
		return "separate"
	case NamesCommaOrCase:
		return "comma-or-case"
	case NamesTrailingToken:
		return "trailing-token"
	case NamesVerbatim:
		return "verbatim"
	}
	return "unknown"
}

// Frameset describes a publisher whose first page may be a frameset shell.
// When the Indicator tag opens in the fetched page (matched
// case-insensitively), the results live at Page relative to the original URL.
type Frameset struct {
	Indicator string
	Page      string
}

// Variant is the fixed configuration for one result publisher
type Variant struct {
	Name        string
	Description string

	// Markers are candidate table-opening markers tried in order; the first
	// one present in the page wins. Matching is case-insensitive.
	Markers []string
	// EndMarker bounds the region after the chosen start marker.
	EndMarker string

	Layout Layout
	// LegacyReflow enables detection of the older dialect whose header uses
	// <td> cells spilling over several lines. When detected, header and rows
	// are flattened and re-broken before every cell.
	LegacyReflow bool
	// RowAnchor, when set, skips rows that do not contain it.
	RowAnchor string

	Frameset   *Frameset
	Dictionary Dictionary
	Names      NameStrategy
}

var (
	rankLabels    = []string{"Rank", "Ranking", "Rnk", "Rg", "Cl."}
	nameLabels    = []string{"Name", "Surname", "Nom", "Apellido-nom"}
	clubLabels    = []string{"Club", "Egyesület"}
	countryLabels = []string{"Country", "Nation", "Nación"}
)

func with(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// Standard is the broadest dictionary, the union of every publisher's labels
// for rank, full name, club and country.
var Standard = Dictionary{
	{Role: Rank, Labels: with(rankLabels, "Place", "#")},
	{Role: FullName, Labels: nameLabels},
	{Role: Club, Labels: with(clubLabels, "Club(s)")},
	{Role: Country, Labels: countryLabels},
}

// Engarde covers every engarde HTML generation, frameset era included.
var Engarde = Variant{
	Name:         "engarde",
	Description:  "Engarde HTML export (frameset era to current)",
	Markers:      []string{"<table"},
	EndMarker:    "</table>",
	Layout:       LayoutLines,
	LegacyReflow: true,
	Frameset:     &Frameset{Indicator: "<frameset", Page: "clasfinal.htm"},
	Dictionary: Dictionary{
		{Role: Rank, Labels: rankLabels},
		{Role: Surname, Labels: nameLabels},
		{Role: Forename, Labels: []string{"First name", "Prénom", "Nombre", "First", "First  name"}},
		{Role: Club, Labels: clubLabels},
		{Role: Country, Labels: countryLabels},
	},
	Names: NamesSeparate,
}

// Fencingtime covers the live site and the three static CSS generations.
var Fencingtime = Variant{
	Name:        "fencingtime",
	Description: "FencingTime results (live, tabbed CSS, dataTable, reporttable)",
	Markers: []string{
		`<table id="resultList"`,
		`id="finalResults">`,
		`<table class="dataTable"`,
		`<table class="reporttable"`,
	},
	EndMarker: "</table>",
	Layout:    LayoutTagged,
	Dictionary: Dictionary{
		{Role: Rank, Labels: with(rankLabels, "Place")},
		{Role: FullName, Labels: nameLabels},
		{Role: Club, Labels: with(clubLabels, "Club(s)")},
		{Role: Country, Labels: []string{"Country"}},
	},
	Names: NamesCommaOrCase,
}

// Ophardt leaves its rank column header blank, so the empty-cell placeholder
// is listed as a rank label.
var Ophardt = Variant{
	Name:        "ophardt",
	Description: "Ophardt / FencingWorldwide results",
	Markers:     []string{"<table"},
	EndMarker:   "</table>",
	Layout:      LayoutTagged,
	Dictionary: Dictionary{
		{Role: Rank, Labels: with(rankLabels, EmptyCell)},
		{Role: FullName, Labels: nameLabels},
		{Role: Club, Labels: clubLabels},
		{Role: Country, Labels: countryLabels},
		{Role: YearOfBirth, Labels: []string{"YOB"}},
	},
	Names: NamesCommaOrCase,
}

// LPJS is the results portal that prints names forename first.
var LPJS = Variant{
	Name:         "lpjs",
	Description:  "Leon Paul Junior Series results portal",
	Markers:      []string{"<table"},
	EndMarker:    "</table>",
	Layout:       LayoutLines,
	LegacyReflow: true,
	Dictionary: Dictionary{
		{Role: Rank, Labels: with(rankLabels, "#")},
		{Role: FullName, Labels: nameLabels},
		{Role: Club, Labels: clubLabels},
		{Role: Country, Labels: countryLabels},
	},
	Names: NamesTrailingToken,
}

// FIE pages embed the athlete list as a JavaScript array literal.
var FIE = Variant{
	Name:        "fie",
	Description: "FIE competition pages (embedded JSON athletes)",
	Markers:     []string{"window._athletes = "},
	EndMarker:   ";",
	Layout:      LayoutJSON,
	Names:       NamesVerbatim,
}

// CSV is the legacy hand-maintained export: Rank,Surname,Forename,Club,Country
// with one block per age category separated by "@@@@" lines.
var CSV = Variant{
	Name:        "csv",
	Description: "Legacy delimited results (Rank,Surname,Forename,Club,Country)",
	Layout:      LayoutCSV,
	Names:       NamesSeparate,
}

// FencingtimeSchedule reads a fencingtime event schedule, where only rows
// carrying a link name a category. It is a crawl helper, not a results
// source, so it is not registered.
var FencingtimeSchedule = Variant{
	Name:        "fencingtime-schedule",
	Description: "FencingTime event schedule (category links)",
	Layout:      LayoutTagged,
	RowAnchor:   "href",
}

var registry = map[string]Variant{
	Engarde.Name:     Engarde,
	Fencingtime.Name: Fencingtime,
	Ophardt.Name:     Ophardt,
	LPJS.Name:        LPJS,
	FIE.Name:         FIE,
	CSV.Name:         CSV,
}

// Lookup returns the variant registered under name (case-insensitive).
func Lookup(name string) (Variant, error) {
	v, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// All returns every registered variant sorted by name.
func All() []Variant {
	out := make([]Variant, 0, len(registry))
	for _, v := range registry {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the registered variant names sorted alphabetically.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = v.Name
	}
	return names
}
