package scraper

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/fencing-results/internal/extract"
	"github.com/pfrederiksen/fencing-results/internal/logger"
	"github.com/pfrederiksen/fencing-results/internal/result"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

// Results fetches pageURL and extracts its results with v. A frameset shell
// is followed once to the results page appended to pageURL.
func (s *Scraper) Results(ctx context.Context, pageURL string, v variant.Variant) ([]result.Result, extract.Report, error) {
	load := func(u string) (string, error) {
		return s.Fetch(ctx, u)
	}
	resolve := func(page string) string {
		target, _ := extract.FramesetTarget(pageURL, page, v)
		return target
	}
	return s.run(pageURL, v, load, resolve)
}

// FileResults extracts results from a saved page. A frameset shell is
// followed to the results file beside it.
func (s *Scraper) FileResults(path string, v variant.Variant) ([]result.Result, extract.Report, error) {
	resolve := func(string) string {
		return filepath.Join(filepath.Dir(path), v.Frameset.Page)
	}
	return s.run(path, v, ReadFile, resolve)
}

// Page loads a page from a URL or, when location is not http(s), from disk.
func (s *Scraper) Page(ctx context.Context, location string) (string, error) {
	if isURL(location) {
		return s.Fetch(ctx, location)
	}
	return ReadFile(location)
}

func (s *Scraper) run(location string, v variant.Variant, load func(string) (string, error), resolve func(string) string) ([]result.Result, extract.Report, error) {
	page, err := load(location)
	if err != nil {
		return nil, extract.Report{Variant: v.Name}, err
	}

	results, rep, err := extract.ExtractWithReport(page, v)

	var refetch *extract.RefetchError
	if errors.As(err, &refetch) {
		target := resolve(page)
		s.metrics.IncrCounter("fetch.refetch")
		s.log.Debug("following frameset", logger.Fields{
			"source": v.Name,
			"from":   location,
			"to":     target,
		})

		page, err = load(target)
		if err != nil {
			return nil, rep, err
		}
		location = target
		results, rep, err = extract.ExtractWithReport(page, v)
		if errors.As(err, &refetch) {
			err = fmt.Errorf("results page %s is another frameset: %w", target, err)
		}
	}
	if err != nil {
		s.metrics.IncrCounter("extract.failures")
		return nil, rep, err
	}

	s.record(location, rep)
	return results, rep, nil
}

// record logs the run report and feeds the metrics.
func (s *Scraper) record(location string, rep extract.Report) {
	s.metrics.AddCounter("extract.rows", int64(rep.Rows))
	s.metrics.AddCounter("extract.rows_skipped", int64(rep.Skipped))
	s.metrics.AddCounter("extract.columns_unresolved", int64(len(rep.Unresolved)))

	if len(rep.Unresolved) > 0 {
		roles := make([]string, len(rep.Unresolved))
		for i, r := range rep.Unresolved {
			roles[i] = r.String()
		}
		s.log.Warn("columns not found in header", logger.Fields{
			"source":  rep.Variant,
			"page":    location,
			"columns": strings.Join(roles, ","),
		})
	}

	s.log.Info("extracted results", logger.Fields{
		"source":  rep.Variant,
		"page":    location,
		"marker":  rep.Marker,
		"legacy":  rep.Legacy,
		"rows":    rep.Rows,
		"skipped": rep.Skipped,
	})
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
