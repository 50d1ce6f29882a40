package extract

import (
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/result"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

// Report describes one extraction run for logging and diagnostics.
type Report struct {
	Variant    string
	Marker     string
	Legacy     bool
	Unresolved []variant.ColumnRole
	Skipped    int
	Rows       int
}

// Extract turns a raw page into results using variant v. It holds no state
// between calls, so identical input always yields identical output.
func Extract(raw string, v variant.Variant) ([]result.Result, error) {
	results, _, err := ExtractWithReport(raw, v)
	return results, err
}

// ExtractWithReport is Extract plus a Report of what the run found. On error
// no results are returned. A frameset shell yields a *RefetchError naming the
// results page relative to the fetched URL.
func ExtractWithReport(raw string, v variant.Variant) ([]result.Result, Report, error) {
	rep := Report{Variant: v.Name}

	switch v.Layout {
	case variant.LayoutCSV:
		blocks, err := ExtractCSV(raw)
		if err != nil {
			return nil, rep, err
		}
		var results []result.Result
		for _, b := range blocks {
			results = append(results, b...)
		}
		rep.Rows = len(results)
		return results, rep, nil

	case variant.LayoutJSON:
		region, err := Locate(raw, v)
		if err != nil {
			return nil, rep, err
		}
		rep.Marker = region.Marker()
		results, err := decodeAthletes(region, v)
		if err != nil {
			return nil, rep, err
		}
		rep.Rows = len(results)
		return results, rep, nil
	}

	if target, ok := FramesetTarget("", raw, v); ok {
		return nil, rep, &RefetchError{URL: target}
	}

	region, err := Locate(raw, v)
	if err != nil {
		return nil, rep, err
	}
	rep.Marker = region.Marker()

	table, err := SplitTable(region, v)
	if err != nil {
		return nil, rep, err
	}
	rep.Legacy = table.Legacy
	rep.Skipped = table.Skipped

	idx := ResolveHeader(table.Header, v.Dictionary)
	rep.Unresolved = idx.Unresolved()

	results := make([]result.Result, 0, len(table.Rows))
	for _, row := range table.Rows {
		results = append(results, project(row, idx, v))
	}
	rep.Rows = len(results)
	return results, rep, nil
}

// project builds one Result from a split row.
func project(row []string, idx ColumnIndex, v variant.Variant) result.Result {
	cell := func(role variant.ColumnRole) string {
		pos := idx.Of(role)
		if pos < 0 || pos >= len(row) || row[pos] == emptyCell {
			return ""
		}
		return row[pos]
	}

	var surname, forename string
	if v.Names == variant.NamesSeparate {
		surname, forename = cell(variant.Surname), cell(variant.Forename)
		if idx.Of(variant.Forename) < 0 {
			// Some generations print the whole name in the surname column.
			surname, forename = NormalizeName(surname, variant.NamesCommaOrCase)
		}
	} else {
		surname, forename = NormalizeName(cell(variant.FullName), v.Names)
	}

	r := result.New(cell(variant.Rank), surname, forename,
		strings.Join(strings.Fields(cell(variant.Club)), " "), cell(variant.Country))
	if v.Dictionary.Has(variant.YearOfBirth) {
		r = r.WithBirthYear(result.ParseBirthYear(cell(variant.YearOfBirth)))
	}
	return r
}
