package event

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/fencing-results/internal/logger"
	"github.com/pfrederiksen/fencing-results/internal/scraper"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

// Index fetches an event index and lists its categories. Only the engarde
// and fencingtime publishers produce event indexes.
func Index(ctx context.Context, s *scraper.Scraper, v variant.Variant, indexURL string) ([]Category, error) {
	page, err := s.Page(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching event index: %w", err)
	}

	switch v.Name {
	case variant.Engarde.Name:
		return ParseEngardeIndex(page, indexURL)
	case variant.Fencingtime.Name:
		return ParseFencingtimeSchedule(page, indexURL)
	}
	return nil, fmt.Errorf("%s has no event index", v.Name)
}

// Crawl extracts every category concurrently, at most limit at a time. The
// output keeps the order of cats. The first failure cancels the rest.
func Crawl(ctx context.Context, s *scraper.Scraper, v variant.Variant, cats []Category, limit int) ([]CategoryResults, error) {
	out := make([]CategoryResults, len(cats))
	s.Metrics().SetGauge("event.categories", float64(len(cats)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, c := range cats {
		i, c := i, c
		g.Go(func() error {
			results, rep, err := s.Results(ctx, c.URL, v)
			if err != nil {
				return fmt.Errorf("category %d (%s): %w", c.ID, c.Name, err)
			}
			out[i] = CategoryResults{Category: c, Results: results, Report: rep}
			logger.Debug("category extracted", logger.Fields{
				"category": c.ID,
				"name":     c.Name,
				"rows":     len(results),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
