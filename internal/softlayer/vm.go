package softlayer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/softlayer/softlayer-go/datatypes"
	"go.uber.org/zap"

	"github.com/vietdv277/devenv/internal/pricing"
	"github.com/vietdv277/devenv/pkg/provider"
	"github.com/vietdv277/devenv/pkg/types"
)

const (
	// DefaultDomain is the organization domain every DevEnv FQDN contains
	DefaultDomain = "upsight-vm.com"

	// GuestMask is the object mask requested for every virtual guest
	GuestMask = "mask[id,operatingSystem[passwords],fullyQualifiedDomainName,primaryBackendIpAddress," +
		"maxCpu,maxMemory,datacenter,createDate," +
		"billingItem[id,nextInvoiceTotalRecurringAmount,currentHourlyCharge,hoursUsed]]"
)

// GuestLister lists the account's virtual guests with an object mask
type GuestLister interface {
	ListVirtualGuests(mask string) ([]datatypes.Virtual_Guest, error)
}

// DevEnvProvider lists DevEnv virtual guests
type DevEnvProvider struct {
	guests GuestLister
	domain string
	logger *zap.SugaredLogger
	now    func() time.Time
}

// ProviderOption customizes a DevEnvProvider
type ProviderOption func(*DevEnvProvider)

// WithDomain sets the organization domain used to select DevEnv guests.
func WithDomain(domain string) ProviderOption {
	return func(p *DevEnvProvider) {
		if domain != "" {
			p.domain = domain
		}
	}
}

// WithLogger sets the provider logger.
func WithLogger(logger *zap.SugaredLogger) ProviderOption {
	return func(p *DevEnvProvider) { p.logger = logger }
}

// WithClock overrides the time source used for accrued cost.
func WithClock(now func() time.Time) ProviderOption {
	return func(p *DevEnvProvider) { p.now = now }
}

// NewDevEnvProvider creates a SoftLayer DevEnv provider. guests is usually a *Client.
func NewDevEnvProvider(guests GuestLister, opts ...ProviderOption) *DevEnvProvider {
	p := &DevEnvProvider{
		guests: guests,
		domain: DefaultDomain,
		logger: zap.NewNop().Sugar(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *DevEnvProvider) Name() types.Provider {
	return types.ProviderSoftLayer
}

type listResult struct {
	guests []datatypes.Virtual_Guest
	err    error
}

// Fetch returns every virtual guest in the organization domain. The SDK call
// cannot be cancelled; when ctx ends first Fetch returns ctx.Err() and the
// call is left to hit the session timeout.
func (p *DevEnvProvider) Fetch(ctx context.Context) ([]types.VM, error) {
	if p.guests == nil {
		return nil, provider.ErrNotConfigured
	}

	done := make(chan listResult, 1)
	go func() {
		guests, err := p.guests.ListVirtualGuests(GuestMask)
		done <- listResult{guests: guests, err: err}
	}()

	var res listResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to list virtual guests: %w", ctx.Err())
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("failed to list virtual guests: %w", res.err)
	}

	now := p.now()

	var vms []types.VM
	for _, guest := range res.guests {
		vm := p.toVM(guest, now)
		if !strings.Contains(vm.Hostname, p.domain) {
			p.logger.Debugw("skipping guest outside domain", "hostname", vm.Hostname, "domain", p.domain)
			continue
		}
		vms = append(vms, vm)
	}

	p.logger.Debugw("fetched SoftLayer DevEnv VMs", "count", len(vms))

	return vms, nil
}

// toVM converts a virtual guest to the normalized VM type
func (p *DevEnvProvider) toVM(g datatypes.Virtual_Guest, now time.Time) types.VM {
	vm := types.VM{
		Provider:     types.ProviderSoftLayer,
		Hostname:     deref(g.FullyQualifiedDomainName),
		IPAddress:    deref(g.PrimaryBackendIpAddress),
		Specs:        fmt.Sprintf("%d CPU, %d MB RAM", derefInt(g.MaxCpu), derefInt(g.MaxMemory)),
		State:        "running", // stop/start is not offered for SoftLayer DevEnvs
		CostPerHour:  hourlyCost(g.BillingItem),
		RootPassword: rootPassword(g.OperatingSystem),
	}

	if g.Id != nil {
		vm.ID = strconv.Itoa(*g.Id)
	}

	if g.Datacenter != nil {
		vm.Zone = deref(g.Datacenter.Name)
	}

	if g.CreateDate != nil {
		vm.CreatedAt = g.CreateDate.Time.UTC()
		vm.CostAccrued = pricing.Accrued(now, vm.CreatedAt, vm.CostPerHour)
	}

	return vm
}

// hourlyCost divides the current hourly charge by the hours used so far.
// Missing or unusable hours count as 1; a missing charge costs 0.
func hourlyCost(item *datatypes.Billing_Item_Virtual_Guest) float64 {
	if item == nil {
		return 0
	}

	charge, ok := parseFloat(item.CurrentHourlyCharge)
	if !ok || charge < 0 {
		return 0
	}

	hours, ok := parseFloat(item.HoursUsed)
	if !ok || hours <= 0 {
		hours = 1
	}

	return charge / hours
}

// rootPassword returns the first OS password, or "Unknown"
func rootPassword(opsys *datatypes.Software_Component_OperatingSystem) string {
	if opsys == nil || len(opsys.Passwords) == 0 {
		return types.Unknown
	}
	if pw := deref(opsys.Passwords[0].Password); pw != "" {
		return pw
	}
	return types.Unknown
}

func parseFloat(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
