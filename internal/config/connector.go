package config

import (
	"log/slog"
	"net/http"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/github"
	"github.com/onurkarakus/nexus/provider/twitter"
)

// TokenSource supplies a stored token for a provider.
type TokenSource interface {
	Lookup(provider nexus.ProviderID) (string, bool)
}

// ConnectorOption configures NewConnector.
type ConnectorOption func(*connectorConfig)

type connectorConfig struct {
	logger *slog.Logger
	client *http.Client
	tokens TokenSource
	events chan<- nexus.Event
}

// WithLogger sets the logger for the connector and providers.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) ConnectorOption {
	return func(c *connectorConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client used by every provider.
// A nil client is ignored.
func WithHTTPClient(client *http.Client) ConnectorOption {
	return func(c *connectorConfig) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTokenSource sets a fallback for the default credential when no
// token is present in the environment.
func WithTokenSource(tokens TokenSource) ConnectorOption {
	return func(c *connectorConfig) {
		c.tokens = tokens
	}
}

// WithEvents forwards chain events to ch.
func WithEvents(ch chan<- nexus.Event) ConnectorOption {
	return func(c *connectorConfig) {
		c.events = ch
	}
}

// NewConnector registers every configured provider under its
// conventional ID and seeds the default credential with the GitHub token.
// Each Connect builds a fresh provider from cfg.
func NewConnector(cfg *Config, opts ...ConnectorOption) (*nexus.Connector, error) {
	cc := &connectorConfig{
		logger: slog.Default(),
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(cc)
	}

	connector, err := nexus.Configure(func(b *nexus.Builder) {
		if cfg.GitHubEnabled() {
			b.RegisterProvider(github.ID, func() nexus.Provider {
				p, err := github.New(cfg.GitHub.Owner, cfg.GitHub.Repo, githubOptions(cfg, cc)...)
				if err != nil {
					cc.logger.Error("building provider", "provider", github.ID, "error", err)
					return nil
				}
				return p
			})
		}
		if cfg.TwitterEnabled() {
			b.RegisterProvider(twitter.ID, func() nexus.Provider {
				p, err := twitter.New(cfg.Twitter.Credentials, twitterOptions(cfg, cc)...)
				if err != nil {
					cc.logger.Error("building provider", "provider", twitter.ID, "error", err)
					return nil
				}
				return p
			})
		}
	}, nexus.WithLogger(cc.logger), nexus.WithEvents(cc.events))
	if err != nil {
		return nil, err
	}

	token := cfg.GitHub.Token
	if token == "" && cc.tokens != nil {
		token, _ = cc.tokens.Lookup(github.ID)
	}
	connector.SetDefaultToken(token)

	return connector, nil
}

func githubOptions(cfg *Config, cc *connectorConfig) []github.Option {
	opts := []github.Option{
		github.WithHTTPClient(cc.client),
		github.WithLogger(cc.logger),
	}
	if cfg.GitHub.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GitHub.BaseURL))
	}
	return opts
}

func twitterOptions(cfg *Config, cc *connectorConfig) []twitter.Option {
	opts := []twitter.Option{
		twitter.WithHTTPClient(cc.client),
		twitter.WithLogger(cc.logger),
	}
	if cfg.Twitter.BaseURL != "" {
		opts = append(opts, twitter.WithBaseURL(cfg.Twitter.BaseURL))
	}
	return opts
}
