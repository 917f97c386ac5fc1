package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vietdv277/devenv/internal/config"
	"github.com/vietdv277/devenv/internal/logger"
)

var (
	// Global flags
	cfgFile    string
	profile    string
	region     string
	logLevel   string
	mapsDir    string
	domain     string
	priceTable string

	// Resolved once before any subcommand runs
	cfg *config.Config
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "devenv",
	Short: "DevEnv - inventory of development VMs across AWS and SoftLayer",
	Long: `DevEnv lists the development VMs running on AWS EC2 and SoftLayer, prices
them, and joins them with the salt-cloud expiration registry.

Commands:
  devenv list                       # Raw VM records as JSON
  devenv list --pretty              # Owner-sorted report with cost and expiration
  devenv list --pretty --owner bob  # Only bob's VMs
  devenv list --pretty -i           # Browse the report interactively
  devenv expirations                # Expiration registry entries
  devenv prices                     # Effective instance price table
  devenv status                     # Configuration and credential checks`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	//Global persistent flags (available to all subcommands)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.config/devenv/config.yaml)")
	flags.StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	flags.StringVarP(&region, "region", "r", "", "AWS region to use")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&mapsDir, "maps-dir", "", "directory of salt-cloud .map expiration descriptors")
	flags.StringVar(&domain, "domain", "", "SoftLayer DevEnv domain")
	flags.StringVar(&priceTable, "price-table", "", "YAML file overriding the built-in price table")

	// Bind flags to viper
	_ = viper.BindPFlag("aws.profile", flags.Lookup("profile"))
	_ = viper.BindPFlag("aws.region", flags.Lookup("region"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("inventory.maps_dir", flags.Lookup("maps-dir"))
	_ = viper.BindPFlag("inventory.domain", flags.Lookup("domain"))
	_ = viper.BindPFlag("inventory.price_table", flags.Lookup("price-table"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Setup(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	c, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	level, err := c.Level()
	if err != nil {
		return err
	}

	cfg = c
	log = logger.New(level)
	log.Debugf("Using config %s", viper.ConfigFileUsed())
	return nil
}
