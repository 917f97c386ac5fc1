// Package softlayer lists DevEnv virtual guests from IBM Cloud classic
// infrastructure (SoftLayer).
//
// Credentials are resolved by softlayer-go: explicit options first, then the
// SL_USERNAME / SL_API_KEY environment variables, then ~/.softlayer.
package softlayer

import (
	"fmt"
	"time"

	"github.com/softlayer/softlayer-go/datatypes"
	"github.com/softlayer/softlayer-go/services"
	"github.com/softlayer/softlayer-go/session"
)

// DefaultTimeout bounds a single SoftLayer API call
const DefaultTimeout = 60 * time.Second

// Client wraps a SoftLayer API session
type Client struct {
	session  *session.Session
	username string
	apiKey   string
	endpoint string
	timeout  time.Duration
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithCredentials sets an explicit API username and key.
func WithCredentials(username, apiKey string) Option {
	return func(c *Client) {
		c.username = username
		c.apiKey = apiKey
	}
}

// WithEndpoint overrides the API endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// NewClient creates a SoftLayer client. Missing credentials are reported
// here rather than on the first request.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}

	sess := session.New(c.username, c.apiKey, c.endpoint)
	if sess.UserName == "" || sess.APIKey == "" {
		return nil, fmt.Errorf("no SoftLayer credentials found (set SL_USERNAME and SL_API_KEY or configure ~/.softlayer)")
	}
	if c.timeout > 0 {
		sess.Timeout = c.timeout
	}

	c.session = sess
	return c, nil
}

// Session returns the underlying softlayer-go session.
func (c *Client) Session() *session.Session {
	return c.session
}

// Username returns the API user the session authenticates as.
func (c *Client) Username() string {
	return c.session.UserName
}

// ListVirtualGuests implements GuestLister over SoftLayer_Account::getVirtualGuests.
func (c *Client) ListVirtualGuests(mask string) ([]datatypes.Virtual_Guest, error) {
	return services.GetAccountService(c.session).Mask(mask).GetVirtualGuests()
}

// Account returns the account the session belongs to.
func (c *Client) Account() (datatypes.Account, error) {
	return services.GetAccountService(c.session).Mask("mask[id,companyName,email]").GetObject()
}
