package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/devenv/internal/inventory"
	"github.com/vietdv277/devenv/internal/metrics"
	"github.com/vietdv277/devenv/internal/ui"
	"github.com/vietdv277/devenv/pkg/types"
)

var (
	listPretty           bool
	listOwner            string
	listShowRootPassword bool
	listOutput           string
	listInteractive      bool
	listMetricsFile      string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List DevEnv VMs across AWS and SoftLayer",
	Long: `List every DevEnv VM on AWS EC2 and SoftLayer.

Without --pretty the normalized records are printed as JSON (or YAML with -o yaml).
With --pretty the records are joined with the expiration registry, filtered by
owner and printed as a table sorted by owner.

Examples:
  devenv list
  devenv list -o yaml
  devenv list --pretty
  devenv list --pretty --owner bob --show-root-password
  devenv list --pretty -i
  devenv list --metrics-file /var/lib/node_exporter/devenv.prom`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listPretty, "pretty", false, "print the owner-sorted report instead of raw records")
	listCmd.Flags().StringVar(&listOwner, "owner", "", "only show VMs of this owner (report only)")
	listCmd.Flags().BoolVar(&listShowRootPassword, "show-root-password", false, "add the root password column (report only)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "json", "raw output format (json, yaml)")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "browse the report interactively (implies --pretty)")
	listCmd.Flags().StringVar(&listMetricsFile, "metrics-file", "", "also write a Prometheus textfile to this path")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listOutput != "json" && listOutput != "yaml" {
		return fmt.Errorf("unsupported output format %q (use json or yaml)", listOutput)
	}

	ctx := cmd.Context()

	inv, err := newInventory(ctx)
	if err != nil {
		return err
	}

	opts := inventory.Options{
		Pretty:           listPretty || listInteractive,
		Owner:            listOwner,
		ShowRootPassword: listShowRootPassword,
	}

	result, err := inv.List(ctx, opts)
	if err != nil {
		return err
	}

	if listMetricsFile != "" {
		if err := metrics.WriteTextfile(listMetricsFile, result.Records); err != nil {
			return err
		}
		log.Debugf("Wrote metrics for %d VMs to %s", len(result.Records), listMetricsFile)
	}

	out := cmd.OutOrStdout()

	if result.Report == nil {
		return writeRecords(out, result.Records, listOutput)
	}

	if len(result.Report.Rows) == 0 {
		fmt.Fprintln(out, "No VMs found")
		return nil
	}

	if listInteractive {
		row, err := ui.BrowseReport(result.Report)
		if errors.Is(err, ui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprint(out, ui.RenderDetails(result.Report, *row))
		return nil
	}

	return ui.PrintReport(out, result.Report, inventory.Summarize(result.Report))
}

func writeRecords(w io.Writer, records []types.VM, format string) error {
	if records == nil {
		records = []types.VM{}
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
		return nil
	}
}
