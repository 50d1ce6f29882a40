package event

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order. Day-first numeric dates are assumed, as
// on the publishers' own pages.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
}

// ParseDate reads an event date in any of the supported layouts.
func ParseDate(text string) (time.Time, error) {
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, ",", " ")), " ")
	if text == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", text)
}
