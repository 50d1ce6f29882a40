package event

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/fencing-results/internal/extract"
	"github.com/pfrederiksen/fencing-results/internal/logger"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

const (
	// engardeResultsPage is appended to each category link on an engarde
	// index to reach its final ranking.
	engardeResultsPage = "index.php?page=clasfinal.htm"

	// scheduleMinBytes is the shortest schedule region the current
	// fencingtime layout produces; anything shorter means the older tabbed
	// layout.
	scheduleMinBytes = 500
)

// ParseEngardeIndex reads the category list of an engarde event index: the
// links of the first <ul>, each pointing at a category directory.
func ParseEngardeIndex(page, indexURL string) ([]Category, error) {
	base, err := url.Parse(dirURL(indexURL))
	if err != nil {
		return nil, fmt.Errorf("parsing index URL: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	cats := make([]Category, 0)
	doc.Find("ul").First().Find("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		dir := strings.TrimSuffix(base.ResolveReference(ref).String(), "/")
		cats = append(cats, Category{
			Position: len(cats),
			Name:     clean(a.Text()),
			URL:      dir + "/" + engardeResultsPage,
		})
	})
	return cats, nil
}

// ParseFencingtimeSchedule reads the category list of a fencingtime event
// schedule. Only table rows carrying a link are categories; links resolve
// against the schedule URL.
func ParseFencingtimeSchedule(page, scheduleURL string) ([]Category, error) {
	cats, skipped, err := parseSchedule(page, scheduleURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("schedule parsed", logger.Fields{
		"url":        scheduleURL,
		"categories": len(cats),
		"skipped":    skipped,
	})
	return cats, nil
}

func parseSchedule(page, scheduleURL string) ([]Category, int, error) {
	base, err := url.Parse(scheduleURL)
	if err != nil {
		return nil, 0, fmt.Errorf("parsing schedule URL: %w", err)
	}

	region := extract.Between(page, "Event Schedule", "</div>")
	if len(region) < scheduleMinBytes {
		region = extract.Between(page, `<div id="schedule"`, "pageFooter")
	}
	if region == "" {
		return nil, 0, fmt.Errorf("%w: no event schedule", extract.ErrNoTableFound)
	}

	rows, skipped := extract.Rows(region, variant.FencingtimeSchedule)
	cats := make([]Category, 0, len(rows))
	for _, row := range rows {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tr" + row + "</table>"))
		if err != nil {
			return nil, 0, fmt.Errorf("parsing HTML: %w", err)
		}
		a := doc.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok {
			skipped++
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			skipped++
			continue
		}
		cats = append(cats, Category{
			Position: len(cats),
			Name:     clean(a.Text()),
			URL:      base.ResolveReference(ref).String(),
		})
	}
	return cats, skipped, nil
}

// dirURL makes sure an index URL names a directory, so relative links
// resolve beneath it rather than beside it.
func dirURL(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	switch strings.ToLower(path.Ext(u)) {
	case ".htm", ".html", ".php":
		return u
	}
	return u + "/"
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
