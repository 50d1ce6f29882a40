package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fencing-results/internal/config"
	"github.com/pfrederiksen/fencing-results/internal/logger"
	"github.com/pfrederiksen/fencing-results/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagLogLevel  string
	flagLogFormat string
)

// cfg is loaded once per invocation by the root command's pre-run hook.
var cfg = config.New()

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fencing-results",
		Short: "Extract fencing competition results from published results pages",
		Long: `A CLI tool to extract ranked results from fencing competition pages
published by engarde, FencingTime, Ophardt, the LPJS portal and the FIE,
and to import them into a results database.`,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "json", "Log format: json or console")

	cmd.AddCommand(
		newSourcesCmd(),
		newExtractCmd(),
		newEventCmd(),
		newImportCmd(),
		newFencerCmd(),
		newClubCmd(),
	)

	return cmd
}

// setup loads the config, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		c.LogFormat = flagLogFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	if c.LogFormat == "console" {
		logger.SetDefault(logger.NewConsole(level, cmd.ErrOrStderr()))
	} else {
		logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	}

	cfg = c
	return nil
}

// newScraper builds a scraper from the loaded config.
func newScraper() *scraper.Scraper {
	return scraper.New(
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithLogger(logger.Default()),
		scraper.WithMetrics(logger.DefaultMetrics()),
	)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
