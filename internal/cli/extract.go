package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fencing-results/internal/export"
	"github.com/pfrederiksen/fencing-results/internal/extract"
	"github.com/pfrederiksen/fencing-results/internal/filter"
	"github.com/pfrederiksen/fencing-results/internal/logger"
	"github.com/pfrederiksen/fencing-results/internal/result"
	"github.com/pfrederiksen/fencing-results/internal/scraper"
	"github.com/pfrederiksen/fencing-results/internal/variant"
)

var (
	flagSource  string
	flagURL     string
	flagFile    string
	flagFormat  string
	flagOut     string
	flagSort    string
	flagVerbose bool

	flagClub     string
	flagCountry  string
	flagTop      int
	flagFinished bool
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract one results table",
		Long: `Extract the ranked results from one results page, fetched from --url
or read from a saved --file, and write them as text, CSV, JSON or XLSX.`,
		Args: cobra.NoArgs,
		RunE: runExtract,
	}

	cmd.Flags().StringVar(&flagSource, "source", "", "Publisher: see 'fencing-results sources' (required)")
	addLocationFlags(cmd)
	addOutputFlags(cmd)
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&flagSort, "sort", "rank", "Sort order: rank, name, club or country")

	cmd.MarkFlagRequired("source")

	return cmd
}

func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagURL, "url", "", "Results page URL")
	cmd.Flags().StringVar(&flagFile, "file", "", "Saved results page")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
	cmd.MarkFlagsOneRequired("url", "file")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, csv, json or xlsx")
	cmd.Flags().StringVar(&flagOut, "out", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Show page titles and years of birth")
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagClub, "club", "", "Keep clubs containing any of these comma-separated names")
	cmd.Flags().StringVar(&flagCountry, "country", "", "Keep these comma-separated country codes")
	cmd.Flags().IntVar(&flagTop, "top", 0, "Keep placings up to this rank")
	cmd.Flags().BoolVar(&flagFinished, "finished", false, "Drop competitors without a placing")
}

func resultFilter() (*filter.Filter, error) {
	f, err := filter.Parse(flagClub, flagCountry, flagTop, flagFinished)
	if err != nil {
		return nil, err
	}
	if !f.IsEmpty() {
		logger.Debug("filtering results", logger.Fields{"filter": f.String()})
	}
	return f, nil
}

// runExtract is the extract command logic
func runExtract(cmd *cobra.Command, _ []string) error {
	v, err := variant.Lookup(flagSource)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	order, ok := export.ParseSortOrder(flagSort)
	if !ok {
		return fmt.Errorf("invalid sort: %s (must be rank, name, club or country)", flagSort)
	}
	f, err := resultFilter()
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
	results = f.Apply(results)
	export.Sort(results, order)

	section := export.Section{URL: location, Results: results}
	if flagVerbose {
		section.Title = pageTitle(ctx, s, location)
	}

	return writeOutput(cmd.OutOrStdout(), []export.Section{section}, format)
}

func flagLocation() string {
	if flagURL != "" {
		return flagURL
	}
	return flagFile
}

func loadResults(ctx context.Context, s *scraper.Scraper, v variant.Variant, location string) ([]result.Result, extract.Report, error) {
	if flagURL != "" {
		return s.Results(ctx, location, v)
	}
	return s.FileResults(location, v)
}

// pageTitle reads the page's heading for display. Failures only cost the
// title.
func pageTitle(ctx context.Context, s *scraper.Scraper, location string) string {
	page, err := s.Page(ctx, location)
	if err != nil {
		logger.Debug("page title unavailable", logger.Fields{"page": location, "error": err.Error()})
		return ""
	}
	info, err := scraper.ParsePageInfo(page)
	if err != nil {
		return ""
	}
	return info.Label()
}

// writeOutput writes sections to --out when given, otherwise to stdout.
func writeOutput(stdout io.Writer, sections []export.Section, format export.Format) error {
	if flagOut == "" {
		if format.Binary() {
			return fmt.Errorf("%s output requires --out", format)
		}
		if err := export.Write(stdout, sections, format, flagVerbose); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	f, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := export.Write(f, sections, format, flagVerbose); err != nil {
		f.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("output written", logger.Fields{"path": flagOut, "format": string(format)})
	return nil
}
