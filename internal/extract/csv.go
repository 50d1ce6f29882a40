package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/result"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

// CategorySeparator splits the legacy delimited export into age categories.
const CategorySeparator = "@@@@"

// ExtractCSV reads the legacy delimited export: one block per age category,
// each line "Rank,Surname,Forename,Club,Country". A header line and lines
// with fewer than two fields are skipped. Blocks keep their input order so
// they can be matched to category ids positionally.
func ExtractCSV(raw string) ([][]result.Result, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	blocks := strings.Split(raw, CategorySeparator)

	out := make([][]result.Result, 0, len(blocks))
	for i, block := range blocks {
		results, err := readCSVBlock(block)
		if err != nil {
			return nil, fmt.Errorf("category block %d: %w", i+1, err)
		}
		out = append(out, results)
	}
	return out, nil
}

func readCSVBlock(block string) ([]result.Result, error) {
	r := csv.NewReader(strings.NewReader(block))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	results := make([]result.Result, 0)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if len(record) < 2 || variant.Standard.Matches(variant.Rank, strings.TrimSpace(record[0])) {
			continue
		}
		field := func(i int) string {
			if i < len(record) {
				return record[i]
			}
			return ""
		}
		results = append(results, result.New(field(0), field(1), field(2), field(3), field(4)))
	}
	return results, nil
}
