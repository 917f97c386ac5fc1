package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/devenv/internal/aws"
	"github.com/vietdv277/devenv/internal/softlayer"
	"github.com/vietdv277/devenv/internal/ui"
	"github.com/vietdv277/devenv/pkg/provider"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and authentication status",
	Long: `Display the resolved configuration and verify the AWS and SoftLayer
credentials.

Examples:
  devenv status
  devenv status -p dev -r us-west-2`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current Status")
	fmt.Fprintln(out, ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Fprintln(out)

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(defaults)"
	}
	fmt.Fprintf(out, "Config:   %s\n", ui.MutedStyle.Render(configFile))
	fmt.Fprintf(out, "Maps:     %s\n", cfg.Inventory.MapsDir)
	fmt.Fprintf(out, "Domain:   %s\n", cfg.Inventory.Domain)
	fmt.Fprintln(out)

	displayAWSStatus(ctx, out)
	fmt.Fprintln(out)
	displaySoftLayerStatus(ctx, out)

	return nil
}

func displayAWSStatus(ctx context.Context, out io.Writer) {
	fmt.Fprintf(out, "Provider: %s\n", ui.AWSStyle.Render("AWS"))
	if cfg.AWS.Profile != "" {
		fmt.Fprintf(out, "Profile:  %s%s\n", ui.AWSStyle.Render(cfg.AWS.Profile), profileNote(cfg.AWS.Profile))
	}

	client, err := newAWSClient(ctx)
	if err != nil {
		displayAuthFailure(out, err, "aws sso login --profile <profile>")
		return
	}
	fmt.Fprintf(out, "Region:   %s\n", client.Region())

	displayIdentity(ctx, out, aws.NewIdentityChecker(client.STS), "aws sso login --profile <profile>")
}

func displaySoftLayerStatus(ctx context.Context, out io.Writer) {
	fmt.Fprintf(out, "Provider: %s\n", ui.SoftLayerStyle.Render("SoftLayer"))

	client, err := newSoftLayerClient()
	if err != nil {
		displayAuthFailure(out, err, "export SL_USERNAME=<user> SL_API_KEY=<key>")
		return
	}

	displayIdentity(ctx, out, softlayer.NewIdentityChecker(client), "check the API key in ~/.softlayer")
}

func displayIdentity(ctx context.Context, out io.Writer, checker provider.IdentityChecker, hint string) {
	identity, err := checker.Identity(ctx)
	if err != nil {
		displayAuthFailure(out, err, hint)
		return
	}

	fmt.Fprintf(out, "Auth:     %s\n", ui.RunningStyle.Render("✓ Authenticated"))
	fmt.Fprintf(out, "Account:  %s\n", identity.Account)
	fmt.Fprintf(out, "User:     %s\n", identity.User)
	if identity.Detail != "" {
		fmt.Fprintf(out, "Detail:   %s\n", ui.MutedStyle.Render(identity.Detail))
	}
}

func displayAuthFailure(out io.Writer, err error, hint string) {
	fmt.Fprintf(out, "Auth:     %s\n", ui.StoppedStyle.Render("✗ Not authenticated"))
	fmt.Fprintf(out, "          %s\n", ui.MutedStyle.Render(err.Error()))
	fmt.Fprintf(out, "          %s\n", ui.HintStyle.Render("To authenticate: "+hint))
}

func profileNote(name string) string {
	p, ok, err := aws.LookupProfile(aws.SharedConfigDir(), name)
	switch {
	case err != nil:
		return " " + ui.MutedStyle.Render("("+err.Error()+")")
	case !ok:
		return " " + ui.PendingStyle.Render("(not found in "+aws.SharedConfigDir()+")")
	default:
		return " " + ui.MutedStyle.Render("("+strings.Join(p.Sources, ", ")+")")
	}
}
