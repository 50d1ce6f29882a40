package result

import (
	"regexp"
	"strconv"
	"strings"
)

var yearPattern = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)

// SanitizeRank coerces a free-text rank token into an ordered integer.
//
// Everything except digits and sign characters is discarded ("T8" -> 8,
// "12T" -> 12), then the leading signed integer is read. Tokens with no
// digits, or whose number is zero or negative, map to SentinelRank.
func SanitizeRank(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	n := leadingInt(b.String())
	if n <= 0 {
		return SentinelRank
	}
	return n
}

// leadingInt parses an optional sign followed by digits, stopping at the first
// character that does not fit. It returns 0 when no digits are present.
func leadingInt(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		// overflow: far beyond any real field size
		return 0
	}
	return n
}

// ParseBirthYear returns the first plausible four digit year in raw, or 0.
func ParseBirthYear(raw string) int {
	m := yearPattern.FindString(raw)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	return year
}
