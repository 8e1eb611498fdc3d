package github

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/internal/rest"
)

// ID is the provider ID GitHub providers are conventionally registered under.
const ID nexus.ProviderID = "github"

// CapabilityIssues is the capability tag for [IssueActions].
const CapabilityIssues nexus.Capability = "github.issues"

const (
	// DefaultBaseURL is the root of the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "NexusConnect/0.1"

	acceptHeader = "application/vnd.github.v3+json"
	providerName = "GitHub"
)

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API root (for GitHub Enterprise or tests).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the transport used for requests. A nil doer is ignored.
func WithHTTPClient(doer nexus.Doer) Option {
	return func(p *Provider) {
		if doer != nil {
			p.doer = doer
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(p *Provider) {
		p.userAgent = userAgent
	}
}

// Provider talks to the issues API of one GitHub repository.
// It implements [nexus.Provider] and [IssueActions].
type Provider struct {
	owner     string
	repo      string
	baseURL   string
	userAgent string
	doer      nexus.Doer
	logger    *slog.Logger

	mu    sync.RWMutex
	token *oauth2.Token

	client *rest.Client
}

// New creates a GitHub provider for owner/repo. The provider is
// unauthenticated until Authenticate is called.
func New(owner, repo string, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, nexus.ValidationError(providerName, "repository owner is required")
	}
	if strings.TrimSpace(repo) == "" {
		return nil, nexus.ValidationError(providerName, "repository name is required")
	}

	p := &Provider{
		owner:     owner,
		repo:      repo,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		doer:      http.DefaultClient,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.client = rest.New(rest.Config{
		Provider:      providerName,
		BaseURL:       p.baseURL + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo),
		Doer:          p.doer,
		Logger:        p.logger,
		Authenticated: p.hasToken,
		Authorize:     p.authorize,
	})
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(owner, repo string, opts ...Option) *Provider {
	p, err := New(owner, repo, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns "GitHub".
func (p *Provider) Name() string { return providerName }

// Owner returns the repository owner.
func (p *Provider) Owner() string { return p.owner }

// Repo returns the repository name.
func (p *Provider) Repo() string { return p.repo }

// Capabilities advertises the issue actions.
func (p *Provider) Capabilities() []nexus.Capability {
	return []nexus.Capability{CapabilityIssues}
}

// Authenticate stores a personal access token (or any bearer token) for
// subsequent requests. Re-authenticating replaces the token.
func (p *Provider) Authenticate(token string) error {
	if token == "" {
		return &nexus.Error{Kind: nexus.KindConfiguration, Provider: providerName, Msg: "empty token"}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	return nil
}

func (p *Provider) hasToken() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token != nil
}

func (p *Provider) authorize(req *http.Request) error {
	p.mu.RLock()
	token := p.token
	p.mu.RUnlock()

	token.SetAuthHeader(req)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", p.userAgent)
	return nil
}
