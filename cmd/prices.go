package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/devenv/internal/ui"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Show the effective EC2 price table",
	Long: `Show the hourly price of every known instance size, including the attached
storage. Sizes missing from the table are priced at $0.

Examples:
  devenv prices
  devenv prices --price-table ./prices.yaml`,
	Args: cobra.NoArgs,
	RunE: runPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}

func runPrices(cmd *cobra.Command, args []string) error {
	table, err := loadPriceTable()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, size := range table.Sizes() {
		p, _ := table.Lookup(size)
		rows = append(rows, []string{
			size,
			fmt.Sprintf("$%.4f", p.ComputeHourly),
			fmt.Sprintf("%g", p.StorageGB),
			fmt.Sprintf("$%.4f", table.CostPerHour(size)),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, ui.RenderTable(
		[]string{"Size", "Compute/hr", "Storage GB", "Total/hr"},
		rows,
		ui.ColumnStyles(ui.SpecsStyle, ui.MutedStyle, ui.MutedStyle, ui.CostStyle),
	))
	fmt.Fprintf(out, "  storage $%.6f per GB-hour\n", table.StoragePerGBHour())
	return nil
}
