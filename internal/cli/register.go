package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fencing-results/internal/storage"
)

var (
	flagForename string
	flagSurname  string
	flagClubName string
	flagAlias    string
)

func newFencerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fencer",
		Short: "Manage known fencers",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Register a fencer so imports can link results to them",
		Long: `Register a fencer by forename and surname. Imported rows are linked to
a fencer when both names match exactly, with the surname as the import
stores it (SMITH is stored as Smith).`,
		Example: `  fencing-results fencer add --forename John --surname Smith`,
		Args:    cobra.NoArgs,
		RunE:    runFencerAdd,
	}
	add.Flags().StringVar(&flagForename, "forename", "", "Forename (required)")
	add.Flags().StringVar(&flagSurname, "surname", "", "Surname (required)")
	add.Flags().StringVar(&flagDB, "db", "", "Results database path (default from config)")
	add.MarkFlagRequired("forename")
	add.MarkFlagRequired("surname")

	cmd.AddCommand(add)
	return cmd
}

func newClubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "club",
		Short: "Manage clubs and their spellings",
	}

	alias := &cobra.Command{
		Use:   "alias",
		Short: "Register a spelling of a club so imports can link results to it",
		Long: `Register the club text a results page prints as a spelling of a club.
The club is created if it does not exist yet. An alias already pointing at
another club is moved.`,
		Example: `  fencing-results club alias --club "Salle Boston" --alias "SALLE BOSTON FC"`,
		Args:    cobra.NoArgs,
		RunE:    runClubAlias,
	}
	alias.Flags().StringVar(&flagClubName, "club", "", "Club name (required)")
	alias.Flags().StringVar(&flagAlias, "alias", "", "Spelling used on results pages (defaults to --club)")
	alias.Flags().StringVar(&flagDB, "db", "", "Results database path (default from config)")
	alias.MarkFlagRequired("club")

	cmd.AddCommand(alias)
	return cmd
}

func runFencerAdd(cmd *cobra.Command, _ []string) error {
	forename := clean(flagForename)
	surname := storage.RecaseSurname(clean(flagSurname))
	if forename == "" || surname == "" {
		return fmt.Errorf("--forename and --surname must not be empty")
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.AddFencer(cmd.Context(), forename, surname)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fencer %d: %s %s\n", id, forename, surname)
	return nil
}

func runClubAlias(cmd *cobra.Command, _ []string) error {
	club := clean(flagClubName)
	alias := clean(flagAlias)
	if alias == "" {
		alias = club
	}
	if club == "" {
		return fmt.Errorf("--club must not be empty")
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.AddClubAlias(cmd.Context(), club, alias)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Club %d: %s (alias %q)\n", id, club, alias)
	return nil
}

// databasePath is --db when given, otherwise the configured database.
func databasePath() (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	return cfg.DatabasePath()
}

func openStore(ctx context.Context) (*storage.Store, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, path)
}

// clean collapses whitespace the way imports store names and clubs.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
