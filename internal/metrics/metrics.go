// Package metrics exports the DevEnv inventory in the Prometheus textfile
// collector format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"github.com/vietdv277/devenv/internal/naming"
	"github.com/vietdv277/devenv/pkg/types"
)

const (
	namespace     = "devenv"
	subsystem     = "vm"
	providerLabel = "provider"
	idLabel       = "id"
	hostnameLabel = "hostname"
	ownerLabel    = "owner"
	sizeLabel     = "specs"
)

// Collector holds the inventory gauges on its own registry
type Collector struct {
	registry    *prometheus.Registry
	costPerHour *prometheus.GaugeVec
	costAccrued *prometheus.GaugeVec
	createdAt   *prometheus.GaugeVec
	vmCount     *prometheus.GaugeVec
}

// NewCollector creates a Collector with an empty registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		costPerHour: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cost_per_hour_dollars",
				Help:      "Hourly cost of a DevEnv VM in dollars.",
			},
			[]string{providerLabel, idLabel, hostnameLabel, ownerLabel, sizeLabel},
		),
		costAccrued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cost_accrued_dollars",
				Help:      "Cost accrued by a DevEnv VM since creation in dollars.",
			},
			[]string{providerLabel, idLabel, hostnameLabel, ownerLabel, sizeLabel},
		),
		createdAt: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "created_timestamp_seconds",
				Help:      "Unix timestamp (in seconds) of the DevEnv VM creation.",
			},
			[]string{providerLabel, idLabel, hostnameLabel, ownerLabel},
		),
		vmCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "vms",
				Help:      "Number of DevEnv VMs per provider and owner.",
			},
			[]string{providerLabel, ownerLabel},
		),
	}
}

// Record replaces the gauges with the given inventory
func (c *Collector) Record(records []types.VM) {
	c.costPerHour.Reset()
	c.costAccrued.Reset()
	c.createdAt.Reset()
	c.vmCount.Reset()

	for _, vm := range records {
		owner, _ := naming.Parse(vm.Hostname)
		// the order of the values should be the same as defined in the metric declaration.
		c.costPerHour.WithLabelValues(string(vm.Provider), vm.ID, vm.Hostname, owner, vm.Specs).Set(vm.CostPerHour)
		c.costAccrued.WithLabelValues(string(vm.Provider), vm.ID, vm.Hostname, owner, vm.Specs).Set(vm.CostAccrued)
		if !vm.CreatedAt.IsZero() {
			c.createdAt.WithLabelValues(string(vm.Provider), vm.ID, vm.Hostname, owner).Set(float64(vm.CreatedAt.Unix()))
		}
	}

	groups := lo.GroupBy(records, func(vm types.VM) string {
		owner, _ := naming.Parse(vm.Hostname)
		return string(vm.Provider) + "\x00" + owner
	})
	for _, vms := range groups {
		owner, _ := naming.Parse(vms[0].Hostname)
		c.vmCount.WithLabelValues(string(vms[0].Provider), owner).Set(float64(len(vms)))
	}
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the gauges atomically to path
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// WriteTextfile records the inventory and writes it to path
func WriteTextfile(path string, records []types.VM) error {
	c := NewCollector()
	c.Record(records)
	return c.WriteTextfile(path)
}
