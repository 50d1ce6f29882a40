package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding a single result list.
const SheetName = "Results"

// writeXLSX writes one worksheet per section. A single section goes to the
// Results sheet; grouped sections get one sheet per category.
func writeXLSX(w io.Writer, sections []Section) error {
	f := excelize.NewFile()
	defer f.Close() // nolint:errcheck

	if len(sections) <= 1 {
		if err := f.SetSheetName("Sheet1", SheetName); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
		var s Section
		if len(sections) == 1 {
			s = sections[0]
		}
		if err := fillSheet(f, SheetName, s); err != nil {
			return err
		}
	} else {
		names := sheetNames(sections)
		for i, s := range sections {
			name := names[i]
			if i == 0 {
				if err := f.SetSheetName("Sheet1", name); err != nil {
					return fmt.Errorf("naming sheet: %w", err)
				}
			} else if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("adding sheet %s: %w", name, err)
			}
			if err := fillSheet(f, name, s); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

// maxSheetName is Excel's limit on worksheet name length.
const maxSheetName = 31

// sheetNames names one sheet per section after its category. A category
// repeated in the list gets a numbered suffix so every section keeps its own
// sheet.
func sheetNames(sections []Section) []string {
	names := make([]string, len(sections))
	used := make(map[string]bool, len(sections))
	for i, s := range sections {
		base := fmt.Sprintf("Category %d", i+1)
		if s.CategoryID != 0 {
			base = fmt.Sprintf("Category %d", s.CategoryID)
		}
		name := truncate(base, maxSheetName)
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncate(base, maxSheetName-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func fillSheet(f *excelize.File, sheet string, s Section) error {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range s.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.Rank, r.Surname, r.Forename, r.Club, r.Country, r.Points}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return nil
}
