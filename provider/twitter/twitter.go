package twitter

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/internal/rest"
)

// ID is the provider ID Twitter providers are conventionally registered under.
const ID nexus.ProviderID = "twitter"

// CapabilityPosts is the capability tag for [PostActions].
const CapabilityPosts nexus.Capability = "twitter.posts"

// DefaultBaseURL is the root of the Twitter API.
const DefaultBaseURL = "https://api.twitter.com"

const providerName = "Twitter"

// Credentials are the four OAuth 1.0a user-context keys.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Validate reports which key, if any, is missing.
func (c Credentials) Validate() error {
	switch {
	case strings.TrimSpace(c.APIKey) == "":
		return nexus.ValidationError(providerName, "API key is required")
	case strings.TrimSpace(c.APISecret) == "":
		return nexus.ValidationError(providerName, "API secret is required")
	case strings.TrimSpace(c.AccessToken) == "":
		return nexus.ValidationError(providerName, "access token is required")
	case strings.TrimSpace(c.AccessTokenSecret) == "":
		return nexus.ValidationError(providerName, "access token secret is required")
	}
	return nil
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API root (for tests).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the client whose transport carries signed requests.
// A nil client is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.base = client
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Provider posts to Twitter with OAuth 1.0a user-context signing.
//
// It is authenticated at construction: the four keys are fixed for the
// life of the provider and Authenticate always fails.
type Provider struct {
	baseURL string
	base    *http.Client
	logger  *slog.Logger
	client  *rest.Client
}

// New creates a Twitter provider from the four OAuth keys. All are required.
func New(creds Credentials, opts ...Option) (*Provider, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		baseURL: DefaultBaseURL,
		base:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, p.base)

	p.client = rest.New(rest.Config{
		Provider: providerName,
		BaseURL:  p.baseURL,
		Doer:     config.Client(ctx, token),
		Logger:   p.logger,
	})
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(creds Credentials, opts ...Option) *Provider {
	p, err := New(creds, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns "Twitter".
func (p *Provider) Name() string { return providerName }

// Capabilities advertises the post actions.
func (p *Provider) Capabilities() []nexus.Capability {
	return []nexus.Capability{CapabilityPosts}
}

// SelfAuthenticated marks the provider as authenticated at construction.
func (p *Provider) SelfAuthenticated() {}

// Authenticate always fails: credentials are supplied to New.
func (p *Provider) Authenticate(string) error {
	return &nexus.Error{
		Kind:     nexus.KindUnsupportedOperation,
		Provider: providerName,
		Msg:      "provider is authenticated at construction with four OAuth keys; cast the connection directly",
	}
}
