package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	require.NoError(t, Setup(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devenv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
aws:
  profile: dev
  region: us-west-2
softlayer:
  timeout: 30s
inventory:
  maps_dir: /srv/maps
  request_timeout: 45s
`), 0o644))

	t.Setenv("DEVENV_INVENTORY_DOMAIN", "example.net")
	t.Setenv("DEVENV_AWS_REGION", "eu-central-1")

	v := viper.New()
	require.NoError(t, Setup(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "dev", cfg.AWS.Profile)
	assert.Equal(t, "eu-central-1", cfg.AWS.Region, "env overrides file")
	assert.Equal(t, 30*time.Second, cfg.SoftLayer.Timeout)
	assert.Equal(t, "/srv/maps", cfg.Inventory.MapsDir)
	assert.Equal(t, 45*time.Second, cfg.Inventory.RequestTimeout)
	assert.Equal(t, "example.net", cfg.Inventory.Domain)
	assert.Equal(t, "DEL", cfg.Inventory.DeletionMarker)
}

func TestSetup_ExplicitFileMustExist(t *testing.T) {
	err := Setup(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "empty domain", mutate: func(c *Config) { c.Inventory.Domain = "" }, wantErr: "inventory.domain"},
		{name: "empty tag", mutate: func(c *Config) { c.Inventory.DevEnvTag = "" }, wantErr: "inventory.devenv_tag"},
		{name: "negative timeout", mutate: func(c *Config) { c.Inventory.RequestTimeout = -time.Second }, wantErr: "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".config", "devenv", "config.yaml"), GetConfigPath())
}
