package pricing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_CostPerHour(t *testing.T) {
	ebs := 0.10 / 24 / 30

	tests := []struct {
		size string
		want float64
	}{
		{size: "t2.micro", want: 0.0116 + 25*ebs},
		{size: "t2.small", want: 0.0232 + 25*ebs},
		{size: "t2.medium", want: 0.0464 + 25*ebs},
		{size: "t2.large", want: 0.0928 + ebs},
		{size: "m5.xlarge", want: 0},
		{size: "", want: 0},
	}

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			assert.InDelta(t, tt.want, table.CostPerHour(tt.size), 1e-12)
		})
	}
}

func TestDefaultTable_Sizes(t *testing.T) {
	assert.Equal(t, []string{"t2.large", "t2.medium", "t2.micro", "t2.small"}, DefaultTable().Sizes())
}

func TestNewTable_CopiesInput(t *testing.T) {
	prices := map[string]Price{"c5.large": {ComputeHourly: 0.085}}
	table := NewTable(0, prices)

	prices["c5.large"] = Price{ComputeHourly: 99}

	assert.InDelta(t, 0.085, table.CostPerHour("c5.large"), 1e-12)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.yaml")
	content := `storage_per_gb_hour: 0.001
sizes:
  t2.micro:
    compute_hourly: 0.02
    storage_gb: 10
  m5.large:
    compute_hourly: 0.096
    storage_gb: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadFile(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.02+10*0.001, table.CostPerHour("t2.micro"), 1e-12)
	assert.InDelta(t, 0.096+50*0.001, table.CostPerHour("m5.large"), 1e-12)
	// defaults not named in the file are kept, priced at the file's storage rate
	assert.InDelta(t, 0.0232+25*0.001, table.CostPerHour("t2.small"), 1e-12)
	assert.Equal(t, 0.001, table.StoragePerGBHour())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sizes: [not, a, map"), 0644))
	_, err = LoadFile(bad)
	require.Error(t, err)

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("sizes:\n  t2.nano:\n    compute_hourly: -1\n"), 0644))
	_, err = LoadFile(negative)
	require.ErrorContains(t, err, "t2.nano")
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable().Sizes(), table.Sizes())
}

func TestAgeHours(t *testing.T) {
	launched := time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{name: "same instant", now: launched, want: 0},
		{name: "ninety minutes", now: launched.Add(90 * time.Minute), want: 1.5},
		{name: "two days and a quarter hour", now: launched.Add(48*time.Hour + 15*time.Minute), want: 48.25},
		{name: "clock skew clamps to zero", now: launched.Add(-time.Hour), want: 0},
		{
			name: "different zones compare as utc",
			now:  time.Date(2026, 10, 1, 10, 0, 0, 0, time.FixedZone("UTC+2", 2*3600)),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AgeHours(tt.now, launched), 1e-9)
		})
	}
}

func TestAccrued_IsRateTimesAge(t *testing.T) {
	launched := time.Date(2026, 9, 28, 23, 17, 41, 0, time.UTC)
	now := time.Date(2026, 10, 19, 8, 3, 12, 0, time.UTC)
	rate := DefaultTable().CostPerHour("t2.medium")

	age := now.Sub(launched)
	days := int(age.Hours()) / 24
	seconds := age.Seconds() - float64(days)*86400
	wantHours := float64(days*24) + seconds/3600

	assert.InDelta(t, rate*wantHours, Accrued(now, launched, rate), 1e-9)
}
