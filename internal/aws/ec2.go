package aws

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"github.com/vietdv277/devenv/internal/pricing"
	"github.com/vietdv277/devenv/pkg/types"
)

const (
	// DefaultDevEnvTag is the tag marking an instance as a DevEnv VM
	DefaultDevEnvTag = "DevEnv"

	// DefaultDeletionMarker flags instances that are being decommissioned
	DefaultDeletionMarker = "DEL"
)

// DevEnvProvider lists DevEnv VMs running in EC2
type DevEnvProvider struct {
	api            ec2.DescribeInstancesAPIClient
	prices         *pricing.Table
	devEnvTag      string
	deletionMarker string
	logger         *zap.SugaredLogger
	now            func() time.Time
}

// DevEnvOption customizes a DevEnvProvider
type DevEnvOption func(*DevEnvProvider)

// WithDevEnvTag sets the tag key that marks DevEnv instances
func WithDevEnvTag(tag string) DevEnvOption {
	return func(p *DevEnvProvider) {
		if tag != "" {
			p.devEnvTag = tag
		}
	}
}

// WithDeletionMarker sets the hostname substring that excludes an instance
func WithDeletionMarker(marker string) DevEnvOption {
	return func(p *DevEnvProvider) {
		if marker != "" {
			p.deletionMarker = marker
		}
	}
}

// WithLogger sets the provider logger
func WithLogger(logger *zap.SugaredLogger) DevEnvOption {
	return func(p *DevEnvProvider) {
		p.logger = logger
	}
}

// WithClock overrides the time source used for accrued cost
func WithClock(now func() time.Time) DevEnvOption {
	return func(p *DevEnvProvider) {
		p.now = now
	}
}

// NewDevEnvProvider creates an EC2 DevEnv provider. api is usually Client.EC2.
func NewDevEnvProvider(api ec2.DescribeInstancesAPIClient, prices *pricing.Table, opts ...DevEnvOption) *DevEnvProvider {
	p := &DevEnvProvider{
		api:            api,
		prices:         prices,
		devEnvTag:      DefaultDevEnvTag,
		deletionMarker: DefaultDeletionMarker,
		logger:         zap.NewNop().Sugar(),
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.prices == nil {
		p.prices = pricing.DefaultTable()
	}

	return p
}

// Name returns the provider identifier
func (p *DevEnvProvider) Name() types.Provider {
	return types.ProviderAWS
}

// Fetch returns every DevEnv VM in the region
func (p *DevEnvProvider) Fetch(ctx context.Context) ([]types.VM, error) {
	// Narrow server side; the tag value is still checked below
	input := &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("tag-key"),
				Values: []string{p.devEnvTag},
			},
		},
	}

	now := p.now()

	var vms []types.VM
	paginator := ec2.NewDescribeInstancesPaginator(p.api, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		for _, reservation := range output.Reservations {
			for _, inst := range reservation.Instances {
				vm, ok := p.toVM(inst, now)
				if !ok {
					continue
				}
				vms = append(vms, vm)
			}
		}
	}

	p.logger.Debugw("fetched EC2 DevEnv VMs", "count", len(vms))

	return vms, nil
}

// toVM converts an EC2 instance to a normalized VM. ok is false for
// instances that are not DevEnv VMs or are marked for deletion.
func (p *DevEnvProvider) toVM(i ec2types.Instance, now time.Time) (types.VM, bool) {
	hostname := types.Unknown
	isDevEnv := false

	// Extract tags
	for _, tag := range i.Tags {
		key := deref(tag.Key)
		value := deref(tag.Value)

		switch key {
		case "Name":
			hostname = value
		case p.devEnvTag:
			// 1, t, T, TRUE, true and True mark a DevEnv VM
			isDevEnv, _ = strconv.ParseBool(value)
		}
	}

	if !isDevEnv {
		return types.VM{}, false
	}

	if strings.Contains(hostname, p.deletionMarker) {
		p.logger.Debugw("skipping instance marked for deletion", "hostname", hostname)
		return types.VM{}, false
	}

	vm := types.VM{
		Provider:    types.ProviderAWS,
		ID:          deref(i.InstanceId),
		Hostname:    hostname,
		IPAddress:   deref(i.PrivateIpAddress),
		Specs:       string(i.InstanceType),
		CostPerHour: p.prices.CostPerHour(string(i.InstanceType)),
	}

	if i.State != nil {
		vm.State = string(i.State.Name)
	}

	if i.Placement != nil {
		vm.Zone = deref(i.Placement.AvailabilityZone)
	}

	if i.LaunchTime != nil {
		vm.CreatedAt = i.LaunchTime.UTC()
		vm.CostAccrued = pricing.Accrued(now, vm.CreatedAt, vm.CostPerHour)
	}

	return vm, true
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
