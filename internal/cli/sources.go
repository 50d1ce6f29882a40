package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fencing-results/internal/variant"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the supported result publishers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, v := range variant.All() {
				fmt.Fprintf(w, "%-12s %s\n", v.Name, v.Description)
				if len(v.Markers) > 0 {
					fmt.Fprintf(w, "%-12s markers: %s\n", "", strings.Join(v.Markers, " | "))
				}
			}
			return nil
		},
	}
}
