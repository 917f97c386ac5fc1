package cmd

import (
	"context"
	"fmt"

	"github.com/vietdv277/devenv/internal/aws"
	"github.com/vietdv277/devenv/internal/expiry"
	"github.com/vietdv277/devenv/internal/inventory"
	"github.com/vietdv277/devenv/internal/pricing"
	"github.com/vietdv277/devenv/internal/softlayer"
	"github.com/vietdv277/devenv/pkg/provider"
)

// newAWSClient builds the AWS SDK clients from the resolved config
func newAWSClient(ctx context.Context) (*aws.Client, error) {
	client, err := aws.NewClient(ctx,
		aws.WithProfile(cfg.AWS.Profile),
		aws.WithRegion(cfg.AWS.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}
	return client, nil
}

// newSoftLayerClient builds the SoftLayer session from the resolved config
func newSoftLayerClient() (*softlayer.Client, error) {
	client, err := softlayer.NewClient(
		softlayer.WithCredentials(cfg.SoftLayer.Username, cfg.SoftLayer.APIKey),
		softlayer.WithEndpoint(cfg.SoftLayer.Endpoint),
		softlayer.WithTimeout(cfg.SoftLayer.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SoftLayer client: %w", err)
	}
	return client, nil
}

func loadPriceTable() (*pricing.Table, error) {
	table, err := pricing.Load(cfg.Inventory.PriceTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load price table: %w", err)
	}
	return table, nil
}

func newRegistry() *expiry.Registry {
	return expiry.NewRegistry(cfg.Inventory.MapsDir, log.Named("expiry"))
}

// newInventory wires both provider adapters and the expiration registry.
// Provider order is AWS first, SoftLayer second.
func newInventory(ctx context.Context) (*inventory.Inventory, error) {
	prices, err := loadPriceTable()
	if err != nil {
		return nil, err
	}

	awsClient, err := newAWSClient(ctx)
	if err != nil {
		return nil, err
	}

	slClient, err := newSoftLayerClient()
	if err != nil {
		return nil, err
	}

	fetchers := []provider.VMFetcher{
		aws.NewDevEnvProvider(awsClient.EC2, prices,
			aws.WithDevEnvTag(cfg.Inventory.DevEnvTag),
			aws.WithDeletionMarker(cfg.Inventory.DeletionMarker),
			aws.WithLogger(log.Named("aws")),
		),
		softlayer.NewDevEnvProvider(slClient,
			softlayer.WithDomain(cfg.Inventory.Domain),
			softlayer.WithLogger(log.Named("softlayer")),
		),
	}

	return inventory.New(fetchers, newRegistry(),
		inventory.WithRequestTimeout(cfg.Inventory.RequestTimeout),
		inventory.WithLogger(log.Named("inventory")),
	), nil
}
