package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// generatorMeta lists the meta names publishers use to sign their pages.
var generatorMeta = []string{"Generator", "generator", "ProgId", "Originator"}

// PageInfo is descriptive metadata read from a results page.
type PageInfo struct {
	Title     string `json:"title,omitempty"`
	Heading   string `json:"heading,omitempty"`
	Generator string `json:"generator,omitempty"`
	// HeaderBlock holds the non-empty lines of the first <h1>, where engarde
	// prints the competition, weapon and venue.
	HeaderBlock []string `json:"header_block,omitempty"`
}

// Label returns the most specific human-readable name for the page.
func (p PageInfo) Label() string {
	if p.Heading != "" {
		return p.Heading
	}
	return p.Title
}

// ParsePageInfo reads the title, first heading, header block and generator
// of page.
func ParsePageInfo(page string) (PageInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return PageInfo{}, fmt.Errorf("parsing HTML: %w", err)
	}

	info := PageInfo{
		Title:   clean(doc.Find("title").First().Text()),
		Heading: clean(doc.Find("h1, h2").First().Text()),
	}
	for _, line := range strings.Split(doc.Find("h1").First().Text(), "\n") {
		if line = clean(line); line != "" {
			info.HeaderBlock = append(info.HeaderBlock, line)
		}
	}
	for _, name := range generatorMeta {
		if content, ok := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).Attr("content"); ok {
			info.Generator = clean(content)
			break
		}
	}
	return info, nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
