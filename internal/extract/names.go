package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pfrederiksen/fencing-results/internal/variant"
)

// noisePattern matches competitor-status markers organisers append to names.
var noisePattern = regexp.MustCompile(`(?i)\((none|v|c|j)\)`)

// NormalizeName splits a full-name string into surname and forename using
// strategy s. It never fails: ambiguous input degrades to a best-effort split
// and either half may be empty.
func NormalizeName(raw string, s variant.NameStrategy) (surname, forename string) {
	name := cleanName(raw)
	if name == "" {
		return "", ""
	}

	switch s {
	case variant.NamesTrailingToken:
		return splitTrailing(name)
	default:
		return splitCommaOrCase(name)
	}
}

func cleanName(raw string) string {
	raw = noisePattern.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(raw), " ")
}

// splitCommaOrCase splits "Surname, Forename" on the first comma. Without a
// comma, words already in upper case form the surname and the rest the
// forename, each half keeping its original word order.
func splitCommaOrCase(name string) (string, string) {
	if before, after, ok := strings.Cut(name, ","); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}

	upper := cases.Upper(language.Und)
	var sur, fore []string
	for _, word := range strings.Fields(name) {
		if upper.String(word) == word {
			sur = append(sur, word)
		} else {
			fore = append(fore, word)
		}
	}
	return strings.Join(sur, " "), strings.Join(fore, " ")
}

// splitTrailing takes the last word as the surname and everything before it
// as the forename.
func splitTrailing(name string) (string, string) {
	words := strings.Fields(name)
	last := len(words) - 1
	return words[last], strings.Join(words[:last], " ")
}
