package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/result"
)

// Format specifies the output format
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat reads a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %s", s)
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Columns is the fixed column order of tabular output.
var Columns = []string{"Rank", "Surname", "Forename", "Club", "Country", "Points"}

// Section is one titled list of results.
type Section struct {
	Title      string          `json:"title,omitempty"`
	CategoryID int             `json:"category_id,omitempty"`
	URL        string          `json:"url,omitempty"`
	Results    []result.Result `json:"results"`
}

// Write renders sections to w. A single section renders as a plain result
// list; several sections keep their category grouping.
func Write(w io.Writer, sections []Section, format Format, verbose bool) error {
	switch format {
	case FormatText:
		return writeText(w, sections, verbose)
	case FormatCSV:
		return writeCSV(w, sections)
	case FormatJSON:
		return writeJSON(w, sections)
	case FormatXLSX:
		return writeXLSX(w, sections)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func row(r result.Result) []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.Surname,
		r.Forename,
		r.Club,
		r.Country,
		strconv.Itoa(r.Points),
	}
}

// writeCSV emits the fixed columns, prefixed by a Category column when there
// is more than one section.
func writeCSV(w io.Writer, sections []Section) error {
	cw := csv.NewWriter(w)
	grouped := len(sections) > 1

	header := Columns
	if grouped {
		header = append([]string{"Category"}, Columns...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, s := range sections {
		for _, r := range s.Results {
			rec := row(r)
			if grouped {
				rec = append([]string{strconv.Itoa(s.CategoryID)}, rec...)
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeJSON emits an array of results, or an array of sections when there is
// more than one.
func writeJSON(w io.Writer, sections []Section) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if len(sections) > 1 {
		return encoder.Encode(sections)
	}
	results := []result.Result{}
	if len(sections) == 1 && sections[0].Results != nil {
		results = sections[0].Results
	}
	return encoder.Encode(results)
}

// writeText outputs results as an aligned human-readable listing
func writeText(w io.Writer, sections []Section, verbose bool) error {
	total := 0
	for _, s := range sections {
		total += len(s.Results)
	}
	if total == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	for i, s := range sections {
		if s.Title != "" || s.CategoryID != 0 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s (%d results):\n", sectionLabel(s), len(s.Results))
		}
		for _, r := range s.Results {
			fmt.Fprintf(w, "%5s  %-32s %-28s %-4s %3d\n", rankLabel(r), nameLabel(r), truncate(r.Club, 28), r.Country, r.Points)
			if verbose && r.BirthYear != 0 {
				fmt.Fprintf(w, "       Born: %d\n", r.BirthYear)
			}
		}
	}

	if len(sections) > 1 {
		fmt.Fprintf(w, "\nTotal: %d results across %d categories\n", total, len(sections))
	} else {
		fmt.Fprintf(w, "\nTotal: %d results\n", total)
	}
	return nil
}

func sectionLabel(s Section) string {
	switch {
	case s.Title != "" && s.CategoryID != 0:
		return fmt.Sprintf("%s [%d]", s.Title, s.CategoryID)
	case s.Title != "":
		return s.Title
	}
	return fmt.Sprintf("Category %d", s.CategoryID)
}

func rankLabel(r result.Result) string {
	if !r.Finished() {
		return "-"
	}
	return strconv.Itoa(r.Rank) + "."
}

func nameLabel(r result.Result) string {
	switch {
	case r.Forename == "":
		return truncate(r.Surname, 32)
	case r.Surname == "":
		return truncate(r.Forename, 32)
	}
	return truncate(r.Surname+", "+r.Forename, 32)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
