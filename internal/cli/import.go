package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fencing-results/internal/event"
	"github.com/pfrederiksen/fencing-results/internal/logger"
	"github.com/pfrederiksen/fencing-results/internal/storage"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

var (
	flagEventID      int
	flagYear         int
	flagDate         string
	flagCategory     int
	flagDB           string
	flagOverrideClub bool
	flagPromote      bool
)

// importOutput is what the import command reports
type importOutput struct {
	storage.Summary
	Source   string               `json:"source"`
	EventID  int                  `json:"event_id"`
	Category int                  `json:"category_id"`
	Entries  int                  `json:"entries"`
	Unlinked []storage.HoldingRow `json:"-"`
	Pending  int                  `json:"unlinked"`
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import one results table into the results database",
		Long: `Extract one results table and load it into the holding table of the
results database, linking fencers by exact name and clubs by alias. With
--promote the linked rows are copied into the results table.`,
		Args: cobra.NoArgs,
		RunE: runImport,
	}

	cmd.Flags().StringVar(&flagSource, "source", "", "Publisher: see 'fencing-results sources' (required)")
	addLocationFlags(cmd)
	cmd.Flags().IntVar(&flagEventID, "event-id", 0, "Event id in the results database (required)")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Season year (defaults to the year of --date)")
	cmd.Flags().StringVar(&flagDate, "date", "", "Event date, e.g. 2024-03-09 (required)")
	cmd.Flags().IntVar(&flagCategory, "category", 0, "Age category id (required)")
	cmd.Flags().StringVar(&flagDB, "db", "", "Results database path (default from config)")
	cmd.Flags().BoolVar(&flagOverrideClub, "override-club", false, "Record the country instead of the club")
	cmd.Flags().BoolVar(&flagPromote, "promote", false, "Copy linked rows into the results table")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "List rows that could not be linked")

	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("event-id")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("category")

	return cmd
}

// runImport is the import command logic
func runImport(cmd *cobra.Command, _ []string) error {
	v, err := variant.Lookup(flagSource)
	if err != nil {
		return err
	}
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	if flagCategory <= 0 {
		return fmt.Errorf("--category must be positive, got %d", flagCategory)
	}
	date, err := event.ParseDate(flagDate)
	if err != nil {
		return err
	}
	evt, err := event.New(flagEventID, flagYear, date)
	if err != nil {
		return err
	}

	dbPath, err := databasePath()
	if err != nil {
		return err
	}

	s := newScraper()
	defer logger.LogMetrics()

	ctx := cmd.Context()
	location := flagLocation()
	results, _, err := loadResults(ctx, s, v, location)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", location, err)
	}

	store, err := storage.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	start := time.Now()
	batch := storage.NewBatch(v.Name, evt, flagCategory, flagOverrideClub || cfg.OverrideClub)
	sum, err := store.Import(ctx, batch, results)
	if err != nil {
		logger.IncrCounter("import.failures")
		return fmt.Errorf("importing results: %w", err)
	}
	if flagPromote {
		if sum.Promoted, err = store.Promote(ctx, batch.ID, sum.DateID); err != nil {
			return err
		}
	}

	unlinked, err := store.Unlinked(ctx, batch.ID)
	if err != nil {
		return err
	}
	entries, err := store.Entries(ctx, sum.DateID, evt.ID, flagCategory)
	if err != nil {
		return err
	}

	logger.IncrCounter("import.batches")
	logger.AddCounter("import.rows", int64(sum.Inserted))
	logger.SetGauge("import.unlinked", float64(len(unlinked)))
	logger.RecordTiming("import.duration", time.Since(start))

	logger.Info("results imported", logger.Fields{
		"batch":          sum.BatchID,
		"db":             dbPath,
		"inserted":       sum.Inserted,
		"linked_fencers": sum.LinkedFencers,
		"linked_clubs":   sum.LinkedClubs,
		"promoted":       sum.Promoted,
	})

	out := importOutput{
		Summary:  sum,
		Source:   v.Name,
		EventID:  evt.ID,
		Category: flagCategory,
		Entries:  entries,
		Unlinked: unlinked,
		Pending:  len(unlinked),
	}
	if flagFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return writeImportText(cmd.OutOrStdout(), out)
}

func writeImportText(w io.Writer, out importOutput) error {
	fmt.Fprintf(w, "Imported %d results for event %d, category %d (batch %s)\n",
		out.Inserted, out.EventID, out.Category, out.BatchID)
	fmt.Fprintf(w, "Entries: %d\n", out.Entries)
	fmt.Fprintf(w, "Linked: %d fencers, %d clubs\n", out.LinkedFencers, out.LinkedClubs)
	if flagPromote {
		fmt.Fprintf(w, "Promoted: %d\n", out.Promoted)
	}
	if out.Pending == 0 {
		return nil
	}

	fmt.Fprintf(w, "Unlinked: %d\n", out.Pending)
	if flagVerbose {
		for _, h := range out.Unlinked {
			missing := "club"
			switch {
			case !h.FencerID.Valid && !h.ClubID.Valid:
				missing = "fencer, club"
			case !h.FencerID.Valid:
				missing = "fencer"
			}
			fmt.Fprintf(w, "  %5d  %s %s (%s): no %s\n", h.Position, h.Forename, h.Surname, h.Club, missing)
		}
	}
	return nil
}
