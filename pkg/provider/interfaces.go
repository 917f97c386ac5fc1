package provider

import (
	"context"
	"errors"

	"github.com/vietdv277/devenv/pkg/types"
)

// Common errors
var (
	ErrNotConfigured = errors.New("provider not configured")
	ErrAuthFailed    = errors.New("authentication failed")
)

// VMFetcher is implemented by every provider adapter. Fetch returns the
// provider's DevEnv VMs already normalized, filtered and priced.
type VMFetcher interface {
	// Name returns the provider identifier (e.g., "aws", "softlayer")
	Name() types.Provider

	// Fetch returns all DevEnv VMs known to the provider
	Fetch(ctx context.Context) ([]types.VM, error)
}

// ExpirationSource returns the owner.prefix -> expiration mapping
type ExpirationSource interface {
	Expirations() (map[string]string, error)
}

// Identity describes the account a provider's credentials resolve to
type Identity struct {
	Provider types.Provider
	Account  string
	User     string
	Detail   string
}

// IdentityChecker verifies that a provider's ambient credentials work
type IdentityChecker interface {
	Identity(ctx context.Context) (*Identity, error)
}
