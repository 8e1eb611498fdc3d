package nexus

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Connection is a single fluent chain bound to one provider instance.
// It starts unauthenticated; WithToken or WithDefaultToken moves it to the
// authenticated state. Capability casts are valid in either state.
//
// A Connection is meant to be used by one goroutine; independent chains
// share nothing but their Connector.
type Connection struct {
	connector *Connector
	id        ProviderID
	provider  Provider
	chainID   string
	logger    *slog.Logger

	mu            sync.Mutex
	authenticated bool
}

func newConnection(c *Connector, id ProviderID, p Provider) *Connection {
	chainID := uuid.New().String()
	return &Connection{
		connector: c,
		id:        id,
		provider:  p,
		chainID:   chainID,
		logger: c.logger.With(
			"chain", chainID,
			"provider", string(id),
		),
	}
}

// ID returns the registered provider ID this chain was started with.
func (c *Connection) ID() ProviderID { return c.id }

// ChainID returns the unique identifier of this chain.
func (c *Connection) ChainID() string { return c.chainID }

// Provider returns the bound provider instance.
func (c *Connection) Provider() Provider { return c.provider }

// Authenticated reports whether credentials have been handed to the provider.
func (c *Connection) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

// SelfAuthenticated reports whether the provider carries its own
// credentials and rejects token injection.
func (c *Connection) SelfAuthenticated() bool {
	_, ok := c.provider.(SelfAuthenticated)
	return ok
}

// Supports reports whether the provider advertises capability.
func (c *Connection) Supports(capability Capability) bool {
	adv, ok := c.provider.(CapabilityAdvertiser)
	if !ok {
		return false
	}
	return slices.Contains(adv.Capabilities(), capability)
}

// Capabilities returns the capability tags advertised by the provider.
func (c *Connection) Capabilities() []Capability {
	adv, ok := c.provider.(CapabilityAdvertiser)
	if !ok {
		return nil
	}
	return slices.Clone(adv.Capabilities())
}

// WithToken authenticates the provider with token and returns the
// connection for chaining.
func (c *Connection) WithToken(token string) (*Connection, error) {
	if token == "" && !c.SelfAuthenticated() {
		return nil, c.fail(&Error{
			Kind:     KindConfiguration,
			Provider: c.provider.Name(),
			Msg:      "empty credential",
		})
	}
	return c.authenticate(token)
}

// WithDefaultToken authenticates the provider with the connector's default
// credential. Fails with a configuration error if none has been set.
func (c *Connection) WithDefaultToken() (*Connection, error) {
	token, ok := c.connector.DefaultToken()
	if !ok {
		return nil, c.fail(&Error{
			Kind:     KindConfiguration,
			Provider: c.provider.Name(),
			Msg:      "no default credential configured (call Connector.SetDefaultToken)",
		})
	}
	return c.authenticate(token)
}

func (c *Connection) authenticate(token string) (*Connection, error) {
	if c.SelfAuthenticated() {
		return nil, c.fail(&Error{
			Kind:     KindUnsupportedOperation,
			Provider: c.provider.Name(),
			Msg:      "provider is authenticated at construction; cast the connection directly",
		})
	}

	if err := c.provider.Authenticate(token); err != nil {
		return nil, c.fail(err)
	}

	c.mu.Lock()
	c.authenticated = true
	c.mu.Unlock()

	c.logger.Debug("provider authenticated")
	emit(c.connector.events, Event{Type: EventAuthenticate, ChainID: c.chainID, Provider: c.id})
	return c, nil
}

// fail logs and emits err as the chain's error event. A capability named
// by err is carried onto the event.
func (c *Connection) fail(err error) error {
	event := Event{Type: EventError, ChainID: c.chainID, Provider: c.id, Error: err}
	var e *Error
	if errors.As(err, &e) {
		event.Capability = e.Capability
	}
	c.logger.Debug("chain step failed", "error", err, "capability", event.Capability)
	emit(c.connector.events, event)
	return err
}

// As reinterprets the connection's provider as capability T. It is a pure
// interface check: no network calls and no state changes. If the provider
// does not implement T, a KindCapabilityNotSupported error naming both the
// provider and T is returned.
//
// Example:
//
//	issues, err := nexus.As[github.IssueActions](conn)
func As[T any](c *Connection) (T, error) {
	capability := capabilityName[T]()

	if view, ok := c.provider.(T); ok {
		c.logger.Debug("capability resolved", "capability", capability)
		emit(c.connector.events, Event{
			Type:       EventCapability,
			ChainID:    c.chainID,
			Provider:   c.id,
			Capability: capability,
		})
		return view, nil
	}

	var zero T
	err := &Error{
		Kind:       KindCapabilityNotSupported,
		Provider:   c.provider.Name(),
		Capability: capability,
		Msg: fmt.Sprintf("provider %s does not support the requested capability %s",
			providerType(c.provider), capability),
	}
	return zero, c.fail(err)
}

// MustAs is like As but panics on error.
func MustAs[T any](c *Connection) T {
	view, err := As[T](c)
	if err != nil {
		panic(err)
	}
	return view
}

func capabilityName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func providerType(p Provider) string {
	return fmt.Sprintf("%T", p)
}
