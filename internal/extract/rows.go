package extract

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/variant"
)

const emptyCell = variant.EmptyCell

// Table is a results region split into header cells and data rows.
type Table struct {
	Header []string
	Rows   [][]string
	// Skipped counts rows dropped for failing a structural check.
	Skipped int
	// Legacy is set when the older multi-line dialect was detected.
	Legacy bool
}

// SplitTable cuts region into rows on the row-start marker. The first chunk
// is the table opening, the second the header; the rest are data rows. Every
// row is split into trimmed cells with the boundary residue dropped, so cell
// i of a row lines up with header cell i.
func SplitTable(region Region, v variant.Variant) (Table, error) {
	chunks := rowStartPattern.Split(region.Text(), -1)
	if len(chunks) < 2 {
		return Table{}, fmt.Errorf("%w: %s region has no header row", ErrNoTableFound, v.Name)
	}

	t := Table{}
	if v.Layout == variant.LayoutLines && v.LegacyReflow && legacyCellStart.MatchString(chunks[1]) {
		t.Legacy = true
	}
	t.Header = splitCells(chunks[1], v.Layout, t.Legacy)

	for _, chunk := range chunks[2:] {
		if !anchored(chunk, v) {
			t.Skipped++
			continue
		}
		cells := splitCells(chunk, v.Layout, t.Legacy)
		if blank(cells) {
			t.Skipped++
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// Rows cuts text into raw row markup on the row-start marker, dropping
// whatever precedes the first row. Rows missing the variant's anchor are
// counted in skipped rather than returned.
func Rows(text string, v variant.Variant) (rows []string, skipped int) {
	chunks := rowStartPattern.Split(text, -1)
	for _, chunk := range chunks[1:] {
		if !anchored(chunk, v) {
			skipped++
			continue
		}
		rows = append(rows, chunk)
	}
	return rows, skipped
}

func anchored(row string, v variant.Variant) bool {
	return v.RowAnchor == "" || containsFold(row, v.RowAnchor)
}

func splitCells(row string, layout variant.Layout, legacy bool) []string {
	if layout == variant.LayoutTagged {
		return taggedCells(row)
	}
	return lineCells(row, legacy)
}

// lineCells treats each source line as one cell.
func lineCells(row string, legacy bool) []string {
	if legacy {
		row = reflow(row)
	}
	parts := strings.Split(normalizeSpaces(stripTags(row)), "\n")
	return collect(parts)
}

// taggedCells breaks the row before every td/th opening tag, so markup
// nested inside a cell stays with that cell.
func taggedCells(row string) []string {
	row = normalizeSpaces(row)
	row = cellStartPattern.ReplaceAllStringFunc(row, func(m string) string {
		return cellBreak + m
	})
	parts := strings.Split(stripTags(row), cellBreak)
	return collect(parts)
}

// collect drops the boundary residue and cleans the remaining cells.
func collect(parts []string) []string {
	if len(parts) <= 1 {
		return nil
	}
	cells := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		cells = append(cells, cleanCell(p))
	}
	return trimTrailingEmpty(cells)
}

// trimTrailingEmpty removes placeholder cells after the last real cell. They
// come from line breaks after the closing row tag and carry no position.
func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == emptyCell {
		end--
	}
	return cells[:end]
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != emptyCell {
			return false
		}
	}
	return true
}
