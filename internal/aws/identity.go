package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/vietdv277/devenv/pkg/provider"
	"github.com/vietdv277/devenv/pkg/types"
)

// CallerIdentityAPI is the subset of the STS client used for identity checks
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// IdentityChecker resolves the caller identity of the configured credentials
type IdentityChecker struct {
	api CallerIdentityAPI
}

// NewIdentityChecker creates an identity checker. api is usually Client.STS.
func NewIdentityChecker(api CallerIdentityAPI) *IdentityChecker {
	return &IdentityChecker{api: api}
}

// Identity returns the current AWS caller identity
func (c *IdentityChecker) Identity(ctx context.Context) (*provider.Identity, error) {
	output, err := c.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provider.ErrAuthFailed, err)
	}

	return &provider.Identity{
		Provider: types.ProviderAWS,
		Account:  deref(output.Account),
		User:     deref(output.UserId),
		Detail:   deref(output.Arn),
	}, nil
}
