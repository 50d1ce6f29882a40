package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fencing-results/internal/event"
	"github.com/pfrederiksen/fencing-results/internal/export"
	"github.com/pfrederiksen/fencing-results/internal/logger"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

var flagCategories string

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Extract every selected category of an event",
		Long: `Read an event index (an engarde index page or a FencingTime schedule)
or a legacy CSV export, select categories with --categories, and extract the
results of each. Category ids line up with the linked entries on the index
in order; 0 skips an entry.`,
		Example: `  fencing-results event --source engarde --url https://example.org/open2024/ --categories 26,27,0,12`,
		Args:    cobra.NoArgs,
		RunE:    runEvent,
	}

	cmd.Flags().StringVar(&flagSource, "source", "", "Publisher: engarde, fencingtime or csv (required)")
	cmd.Flags().StringVar(&flagCategories, "categories", "", "Comma-separated category ids, one per index entry (required)")
	addLocationFlags(cmd)
	addOutputFlags(cmd)
	addFilterFlags(cmd)

	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("categories")

	return cmd
}

// runEvent is the event command logic
func runEvent(cmd *cobra.Command, _ []string) error {
	v, err := variant.Lookup(flagSource)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	ids, err := event.ParseCategoryIDs(flagCategories)
	if err != nil {
		return err
	}
	f, err := resultFilter()
	if err != nil {
		return err
	}

	s := newScraper()
	defer logger.LogMetrics()

	ctx := cmd.Context()
	location := flagLocation()

	var crawled []event.CategoryResults
	switch v.Name {
	case variant.CSV.Name:
		raw, err := s.Page(ctx, location)
		if err != nil {
			return fmt.Errorf("reading %s: %w", location, err)
		}
		if crawled, err = event.FromCSV(raw, location, ids); err != nil {
			return err
		}

	case variant.Engarde.Name, variant.Fencingtime.Name:
		if flagURL == "" {
			return fmt.Errorf("%s events need --url", v.Name)
		}
		cats, err := event.Index(ctx, s, v, location)
		if err != nil {
			return err
		}
		selected, err := event.Assign(cats, ids)
		if err != nil {
			return err
		}
		logger.Info("event index read", logger.Fields{
			"source":     v.Name,
			"index":      location,
			"categories": len(cats),
			"selected":   len(selected),
		})
		if crawled, err = event.Crawl(ctx, s, v, selected, cfg.MaxConcurrent); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%s has no event index (use engarde, fencingtime or csv)", v.Name)
	}

	sections := make([]export.Section, len(crawled))
	for i, c := range crawled {
		sections[i] = export.Section{
			Title:      c.Category.Name,
			CategoryID: c.Category.ID,
			URL:        c.Category.URL,
			Results:    f.Apply(c.Results),
		}
	}
	return writeOutput(cmd.OutOrStdout(), sections, format)
}
