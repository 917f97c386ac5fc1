package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/vietdv277/devenv/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. DEVENV_AWS_REGION
const EnvPrefix = "DEVENV"

// Config is the resolved application configuration
type Config struct {
	LogLevel  string          `mapstructure:"log_level" yaml:"log_level"`
	AWS       AWSConfig       `mapstructure:"aws" yaml:"aws"`
	SoftLayer SoftLayerConfig `mapstructure:"softlayer" yaml:"softlayer"`
	Inventory InventoryConfig `mapstructure:"inventory" yaml:"inventory"`
}

// AWSConfig selects the AWS profile and region. Credentials come from the
// SDK default chain.
type AWSConfig struct {
	Profile string `mapstructure:"profile" yaml:"profile,omitempty"`
	Region  string `mapstructure:"region" yaml:"region,omitempty"`
}

// SoftLayerConfig holds optional explicit SoftLayer credentials
type SoftLayerConfig struct {
	Username string        `mapstructure:"username" yaml:"username,omitempty"`
	APIKey   string        `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// InventoryConfig controls which VMs count as DevEnv VMs and how they are priced
type InventoryConfig struct {
	Domain         string        `mapstructure:"domain" yaml:"domain"`
	DevEnvTag      string        `mapstructure:"devenv_tag" yaml:"devenv_tag"`
	DeletionMarker string        `mapstructure:"deletion_marker" yaml:"deletion_marker"`
	MapsDir        string        `mapstructure:"maps_dir" yaml:"maps_dir"`
	PriceTable     string        `mapstructure:"price_table" yaml:"price_table,omitempty"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		LogLevel: "info",
		SoftLayer: SoftLayerConfig{
			Timeout: 60 * time.Second,
		},
		Inventory: InventoryConfig{
			Domain:         "upsight-vm.com",
			DevEnvTag:      "DevEnv",
			DeletionMarker: "DEL",
			MapsDir:        "/etc/salt/cloud.maps.d",
			RequestTimeout: 2 * time.Minute,
		},
	}
}

// SetDefaults registers the built-in values on v
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("aws.profile", d.AWS.Profile)
	v.SetDefault("aws.region", d.AWS.Region)
	v.SetDefault("softlayer.username", d.SoftLayer.Username)
	v.SetDefault("softlayer.api_key", d.SoftLayer.APIKey)
	v.SetDefault("softlayer.endpoint", d.SoftLayer.Endpoint)
	v.SetDefault("softlayer.timeout", d.SoftLayer.Timeout)
	v.SetDefault("inventory.domain", d.Inventory.Domain)
	v.SetDefault("inventory.devenv_tag", d.Inventory.DevEnvTag)
	v.SetDefault("inventory.deletion_marker", d.Inventory.DeletionMarker)
	v.SetDefault("inventory.maps_dir", d.Inventory.MapsDir)
	v.SetDefault("inventory.price_table", d.Inventory.PriceTable)
	v.SetDefault("inventory.request_timeout", d.Inventory.RequestTimeout)
}

// GetConfigDir returns the config directory path (~/.config/devenv)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devenv"
	}
	return filepath.Join(home, ".config", "devenv")
}

// GetConfigPath returns the config file path (~/.config/devenv/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Setup wires defaults, environment overrides and the config file into v.
// An explicit file must exist; the default file is optional.
func Setup(v *viper.Viper, file string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigFile(GetConfigPath())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// Load resolves v into a validated Config
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values no command can work without
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Inventory.Domain == "" {
		return fmt.Errorf("inventory.domain must not be empty")
	}
	if c.Inventory.DevEnvTag == "" {
		return fmt.Errorf("inventory.devenv_tag must not be empty")
	}
	if c.Inventory.RequestTimeout < 0 || c.SoftLayer.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() (zapcore.Level, error) {
	return logger.ParseLevel(c.LogLevel)
}
