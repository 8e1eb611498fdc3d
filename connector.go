package nexus

import (
	"errors"
	"log/slog"
	"sync"
)

// Option configures a Connector.
type Option func(*Connector)

// WithLogger sets the logger used for chain diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEvents sets a channel that receives chain events.
// Events are sent non-blocking; if the channel is full, events are dropped.
func WithEvents(events chan<- Event) Option {
	return func(c *Connector) {
		c.events = events
	}
}

// WithRegistry makes the connector share an existing registry.
func WithRegistry(r *Registry) Option {
	return func(c *Connector) {
		if r != nil {
			c.registry = r
		}
	}
}

// Connector is the composition root of the library: it owns the provider
// registry and the default credential, and starts fluent chains.
// Connectors are independent of each other; there is no global state.
type Connector struct {
	registry *Registry
	logger   *slog.Logger
	events   chan<- Event

	mu           sync.RWMutex
	defaultToken string
}

// New creates a Connector with an empty registry.
func New(opts ...Option) *Connector {
	c := &Connector{
		registry: NewRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure creates a Connector and runs configure against its registry.
//
// Example:
//
//	connector, err := nexus.Configure(func(b *nexus.Builder) {
//	    b.RegisterProvider(github.ID, func() nexus.Provider {
//	        return github.MustNew("octocat", "hello-world")
//	    })
//	})
func Configure(configure func(b *Builder), opts ...Option) (*Connector, error) {
	c := New(opts...)
	if configure != nil {
		b := &Builder{registry: c.registry}
		configure(b)
		if len(b.errs) > 0 {
			return nil, errors.Join(b.errs...)
		}
	}
	return c, nil
}

// MustConfigure is like Configure but panics on error.
func MustConfigure(configure func(b *Builder), opts ...Option) *Connector {
	c, err := Configure(configure, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Registry returns the connector's provider registry.
func (c *Connector) Registry() *Registry {
	return c.registry
}

// SetDefaultToken sets the credential used by [Connection.WithDefaultToken].
// An empty token clears it.
func (c *Connector) SetDefaultToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultToken = token
}

// DefaultToken returns the default credential and whether one is set.
func (c *Connector) DefaultToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultToken, c.defaultToken != ""
}

// Connect starts a fluent chain: it resolves the factory registered for id
// and binds a freshly constructed provider to a new Connection.
func (c *Connector) Connect(id ProviderID) (*Connection, error) {
	factory, err := c.registry.Resolve(id)
	if err != nil {
		emit(c.events, Event{Type: EventError, Provider: id, Error: err})
		return nil, err
	}

	provider := factory()
	if provider == nil {
		err := &Error{Kind: KindConfiguration, Msg: "factory for " + string(id) + " returned nil provider"}
		emit(c.events, Event{Type: EventError, Provider: id, Error: err})
		return nil, err
	}

	conn := newConnection(c, id, provider)
	conn.logger.Debug("connection prepared", "type", providerType(provider))
	emit(c.events, Event{Type: EventConnect, ChainID: conn.chainID, Provider: id})
	return conn, nil
}
