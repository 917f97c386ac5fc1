package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/devenv/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestWriteRecords(t *testing.T) {
	records := []types.VM{{
		Provider:    types.ProviderAWS,
		ID:          "i-0abc",
		Hostname:    "web.bob.dc1",
		IPAddress:   "10.0.0.1",
		Specs:       "t2.micro",
		State:       "running",
		CostPerHour: 0.0151,
		CostAccrued: 1.5,
	}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRecords(&buf, records, "json"))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "web.bob.dc1", got[0]["hostname"])
		assert.Equal(t, "10.0.0.1", got[0]["ip"])
		assert.InDelta(t, 0.0151, got[0]["cost_hr"], 1e-12)
		assert.NotContains(t, got[0], "password")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRecords(&buf, records, "yaml"))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "aws", got[0]["provider"])
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRecords(&buf, nil, "json"))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestPricesCommand(t *testing.T) {
	out, err := execute(t, "prices")
	require.NoError(t, err)

	assert.Contains(t, out, "t2.micro")
	assert.Contains(t, out, "t2.large")
	assert.Contains(t, out, "Total/hr")
}

func TestExpirationsCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bob.kafka.map"), []byte("# create_ts: 1000000\n# lifespan: 3600\n"), 0o644))

	out, err := execute(t, "expirations", "--maps-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "bob.kafka")
	assert.Contains(t, out, "1970-01-12 14:46")
	assert.Contains(t, out, "1 entries")
}

func TestListCommand_RejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "list", "-o", "xml")
	require.ErrorContains(t, err, "unsupported output format")
	listOutput = "json"
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "prices", "--log-level", "loud")
	require.ErrorContains(t, err, "invalid log_level")
	logLevel = ""
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")
}
