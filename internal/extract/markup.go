package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// WaybackMarker ends the toolbar the web archive injects into captured pages.
const WaybackMarker = "<!-- END WAYBACK TOOLBAR INSERT -->"

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	rowStartPattern  = regexp.MustCompile(`(?i)<tr`)
	cellStartPattern = regexp.MustCompile(`(?i)<t[dh][\s>]`)
	legacyCellStart  = regexp.MustCompile(`(?i)<td`)

	nbspReplacer = strings.NewReplacer("&nbsp;", " ", "&#160;", " ", "&#xA0;", " ", "&#xa0;", " ", "\u00a0", " ")
)

// cellBreak is the synthetic delimiter inserted at cell boundaries. It cannot
// occur in result text.
const cellBreak = "\x1f"

// stripWayback drops everything before the archive toolbar end marker.
func stripWayback(page string) string {
	if i := strings.Index(page, WaybackMarker); i >= 0 {
		return page[i:]
	}
	return page
}

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

func normalizeSpaces(s string) string {
	return nbspReplacer.Replace(s)
}

// reflow flattens a legacy row onto one line and breaks it again before
// every cell, so each cell lands on its own line.
func reflow(row string) string {
	row = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(row)
	return legacyCellStart.ReplaceAllStringFunc(row, func(m string) string {
		return "\n" + m
	})
}

// cleanCell trims a cell, decodes the remaining entities and substitutes the
// placeholder for a cell that renders nothing.
func cleanCell(s string) string {
	s = strings.TrimSpace(html.UnescapeString(s))
	if s == "" {
		return emptyCell
	}
	return s
}

// lowerASCII folds A-Z only, keeping byte offsets aligned with the input.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// indexFold is a case-insensitive strings.Index for ASCII markers.
func indexFold(s, substr string) int {
	return strings.Index(lowerASCII(s), lowerASCII(substr))
}

func containsFold(s, substr string) bool {
	return indexFold(s, substr) >= 0
}

// Between returns the text between the first start marker and the next end
// marker, matched case-insensitively, or "" when either is missing.
func Between(s, start, end string) string {
	i := indexFold(s, start)
	if i < 0 {
		return ""
	}
	rest := s[i+len(start):]
	j := indexFold(rest, end)
	if j < 0 {
		return ""
	}
	return rest[:j]
}
