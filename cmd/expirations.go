package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/devenv/internal/ui"
)

var expirationsCmd = &cobra.Command{
	Use:   "expirations",
	Short: "List expiration registry entries",
	Long: `List the owner.prefix expirations read from the salt-cloud map descriptors.

Examples:
  devenv expirations
  devenv expirations --maps-dir /srv/salt/cloud.maps.d`,
	Args: cobra.NoArgs,
	RunE: runExpirations,
}

func init() {
	rootCmd.AddCommand(expirationsCmd)
}

func runExpirations(cmd *cobra.Command, args []string) error {
	registry := newRegistry()

	entries, err := registry.Entries()
	if err != nil {
		return fmt.Errorf("failed to read expirations: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No expirations found in %s\n", registry.Dir())
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, e.Formatted()})
	}

	fmt.Fprint(out, ui.RenderTable([]string{"Owner.Prefix", "Expires (UTC)"}, rows, ui.ColumnStyles(ui.NameStyle, ui.PendingStyle)))
	fmt.Fprintf(out, "  %d entries in %s\n", len(entries), registry.Dir())
	return nil
}
