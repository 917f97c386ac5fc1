// Package inventory joins the DevEnv VMs of every provider with the
// expiration registry and builds the owner-sorted report.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vietdv277/devenv/internal/logger"
	"github.com/vietdv277/devenv/internal/naming"
	"github.com/vietdv277/devenv/pkg/provider"
	"github.com/vietdv277/devenv/pkg/types"
)

// DefaultRequestTimeout bounds each provider fetch
const DefaultRequestTimeout = 2 * time.Minute

// NoPassword is shown for VMs whose provider does not expose a root password
const NoPassword = "None"

// Options selects what List returns
type Options struct {
	// Pretty builds a Report instead of returning only raw records
	Pretty bool
	// Owner keeps only rows whose derived owner matches exactly
	Owner string
	// ShowRootPassword adds the password column to the report
	ShowRootPassword bool
}

// Result is the outcome of List. Report is nil unless Options.Pretty is set.
type Result struct {
	Records []types.VM
	Report  *types.Report
}

// Inventory aggregates DevEnv VMs across providers
type Inventory struct {
	fetchers       []provider.VMFetcher
	expirations    provider.ExpirationSource
	requestTimeout time.Duration
	logger         *zap.SugaredLogger
}

// Option customizes an Inventory
type Option func(*Inventory)

// WithRequestTimeout bounds each provider fetch
func WithRequestTimeout(d time.Duration) Option {
	return func(inv *Inventory) {
		if d > 0 {
			inv.requestTimeout = d
		}
	}
}

// WithLogger sets the inventory logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(inv *Inventory) { inv.logger = l }
}

// New creates an Inventory over the given providers. Provider order is the
// order records are concatenated in.
func New(fetchers []provider.VMFetcher, expirations provider.ExpirationSource, opts ...Option) *Inventory {
	inv := &Inventory{
		fetchers:       fetchers,
		expirations:    expirations,
		requestTimeout: DefaultRequestTimeout,
		logger:         zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// List fetches every provider and, when opts.Pretty is set, builds the report
func (inv *Inventory) List(ctx context.Context, opts Options) (*Result, error) {
	records, err := inv.Collect(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Records: records}
	if !opts.Pretty {
		return result, nil
	}

	expirations := map[string]string{}
	if inv.expirations != nil {
		expirations, err = inv.expirations.Expirations()
		if err != nil {
			return nil, fmt.Errorf("failed to read expirations: %w", err)
		}
	}

	result.Report = BuildReport(records, expirations, opts)
	return result, nil
}

// Collect fetches every provider concurrently and concatenates the results
// in provider order. Any provider failure fails the whole collection.
func (inv *Inventory) Collect(ctx context.Context) ([]types.VM, error) {
	perProvider := make([][]types.VM, len(inv.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range inv.fetchers {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, inv.requestTimeout)
			defer cancel()

			start := time.Now()
			vms, err := f.Fetch(fctx)
			if err != nil {
				inv.logger.With(logger.KeyProvider, f.Name()).
					With(logger.KeyResult, logger.ValueFail).
					With(logger.KeyError, err.Error()).
					Debug("Fetch VMs")
				return fmt.Errorf("failed to fetch %s VMs: %w", f.Name(), err)
			}

			inv.logger.With(logger.KeyProvider, f.Name()).
				With(logger.KeyResult, logger.ValueSuccess).
				Debugf("Fetched %d VMs in %s", len(vms), time.Since(start).Round(time.Millisecond))
			perProvider[i] = vms
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.Flatten(perProvider), nil
}

// BuildReport joins records with expirations, applies the owner filter and
// sorts rows by owner. Rows of the same owner keep their input order.
func BuildReport(records []types.VM, expirations map[string]string, opts Options) *types.Report {
	report := &types.Report{ShowPassword: opts.ShowRootPassword}

	for _, vm := range records {
		owner, prefix := naming.Parse(vm.Hostname)
		if opts.Owner != "" && opts.Owner != owner {
			continue
		}

		expiration, ok := expirations[naming.Key(owner, prefix)]
		if !ok {
			expiration = types.Unknown
		}

		password := vm.RootPassword
		if password == "" {
			password = missingPassword(vm.Provider)
		}

		report.Rows = append(report.Rows, types.ReportRow{
			IPAddress:  vm.IPAddress,
			Hostname:   vm.Hostname,
			Owner:      owner,
			Prefix:     prefix,
			Specs:      vm.Specs,
			Provider:   string(vm.Provider),
			Cost:       FormatCost(vm.CostAccrued, vm.CostPerHour),
			Expiration: expiration,
			State:      vm.State,
			Password:   password,
			VM:         vm,
		})
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Owner < report.Rows[j].Owner
	})

	return report
}

// missingPassword is the placeholder for a record without a root password.
// SoftLayer exposes passwords, so a gap there is a retrieval failure.
func missingPassword(p types.Provider) string {
	if p == types.ProviderSoftLayer {
		return types.Unknown
	}
	return NoPassword
}

// FormatCost renders accrued and hourly cost as "$12.34 ($0.015/hr)"
func FormatCost(total, perHour float64) string {
	return fmt.Sprintf("$%.2f ($%.3f/hr)", total, perHour)
}

// Summarize totals a report
func Summarize(report *types.Report) types.ReportTotals {
	return types.ReportTotals{
		VMs:    len(report.Rows),
		Owners: len(lo.Uniq(lo.Map(report.Rows, func(r types.ReportRow, _ int) string { return r.Owner }))),
		CostPerHour: lo.SumBy(report.Rows, func(r types.ReportRow) float64 {
			return r.VM.CostPerHour
		}),
		CostAccrued: lo.SumBy(report.Rows, func(r types.ReportRow) float64 {
			return r.VM.CostAccrued
		}),
	}
}
