// Package pricing holds the static EC2 price table used to cost DevEnv VMs
// and the age arithmetic shared by every provider adapter.
//
// Hourly cost for a size is its on-demand compute price plus the EBS volume
// attached to it:
//
//	CostPerHour = ComputeHourly + StorageGB * StoragePerGBHour
//
// Sizes missing from the table cost 0.
package pricing

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultStoragePerGBHour is the EBS gp2 price of $0.10 per GB-month expressed per hour
const DefaultStoragePerGBHour = 0.10 / 24 / 30

// Price describes the hourly price of one instance size
type Price struct {
	ComputeHourly float64 `yaml:"compute_hourly"`
	StorageGB     float64 `yaml:"storage_gb"`
}

// Table maps instance size identifiers to prices. A Table is never mutated
// after construction.
type Table struct {
	storagePerGBHour float64
	prices           map[string]Price
}

// tableFile is the on-disk YAML shape of a price table
type tableFile struct {
	StoragePerGBHour *float64         `yaml:"storage_per_gb_hour,omitempty"`
	Sizes            map[string]Price `yaml:"sizes"`
}

// DefaultTable returns the built-in us-west-2 t2 price table
func DefaultTable() *Table {
	// On-demand prices for us-west-2 as of 10/17/2017
	return NewTable(DefaultStoragePerGBHour, map[string]Price{
		"t2.micro":  {ComputeHourly: 0.0116, StorageGB: 25},
		"t2.small":  {ComputeHourly: 0.0232, StorageGB: 25},
		"t2.medium": {ComputeHourly: 0.0464, StorageGB: 25},
		"t2.large":  {ComputeHourly: 0.0928, StorageGB: 1},
	})
}

// NewTable creates a price table from the given prices
func NewTable(storagePerGBHour float64, prices map[string]Price) *Table {
	t := &Table{
		storagePerGBHour: storagePerGBHour,
		prices:           make(map[string]Price, len(prices)),
	}
	for size, p := range prices {
		t.prices[size] = p
	}
	return t
}

// LoadFile loads a YAML price table and layers it over the defaults. Sizes in
// the file replace or extend the built-in ones.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price table: %w", err)
	}

	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse price table: %w", err)
	}

	base := DefaultTable()
	storage := base.storagePerGBHour
	if f.StoragePerGBHour != nil {
		storage = *f.StoragePerGBHour
	}

	merged := base.prices
	for size, p := range f.Sizes {
		if p.ComputeHourly < 0 || p.StorageGB < 0 {
			return nil, fmt.Errorf("invalid price for %s: negative value", size)
		}
		merged[size] = p
	}

	return NewTable(storage, merged), nil
}

// Load returns the table at path, or the default table when path is empty
func Load(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	return LoadFile(path)
}

// CostPerHour returns the hourly cost of an instance size, or 0 if unknown
func (t *Table) CostPerHour(size string) float64 {
	p, ok := t.prices[size]
	if !ok {
		return 0
	}
	return p.ComputeHourly + p.StorageGB*t.storagePerGBHour
}

// Lookup returns the price entry for a size
func (t *Table) Lookup(size string) (Price, bool) {
	p, ok := t.prices[size]
	return p, ok
}

// Sizes returns the known instance sizes in sorted order
func (t *Table) Sizes() []string {
	sizes := make([]string, 0, len(t.prices))
	for size := range t.prices {
		sizes = append(sizes, size)
	}
	sort.Strings(sizes)
	return sizes
}

// StoragePerGBHour returns the storage rate applied to every size
func (t *Table) StoragePerGBHour() float64 {
	return t.storagePerGBHour
}
