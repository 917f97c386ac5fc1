package softlayer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/softlayer/softlayer-go/datatypes"

	"github.com/vietdv277/devenv/pkg/provider"
	"github.com/vietdv277/devenv/pkg/types"
)

// AccountGetter fetches the account owning the session
type AccountGetter interface {
	Account() (datatypes.Account, error)
	Username() string
}

// IdentityChecker verifies SoftLayer credentials with an account lookup
type IdentityChecker struct {
	api AccountGetter
}

// NewIdentityChecker creates an identity checker. api is usually a *Client.
func NewIdentityChecker(api AccountGetter) *IdentityChecker {
	return &IdentityChecker{api: api}
}

// Identity returns the SoftLayer account the credentials belong to
func (c *IdentityChecker) Identity(ctx context.Context) (*provider.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	account, err := c.api.Account()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provider.ErrAuthFailed, err)
	}

	id := &provider.Identity{
		Provider: types.ProviderSoftLayer,
		User:     c.api.Username(),
		Detail:   deref(account.CompanyName),
	}
	if account.Id != nil {
		id.Account = strconv.Itoa(*account.Id)
	}

	return id, nil
}
