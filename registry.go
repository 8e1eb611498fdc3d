package nexus

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps provider IDs to factories.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[ProviderID]Factory
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[ProviderID]Factory),
	}
}

// Register stores the factory for id, replacing any previous registration.
// The factory itself is not invoked or validated.
func (r *Registry) Register(id ProviderID, factory Factory) error {
	if id == "" {
		return NewError(KindConfiguration, "", "provider id must not be empty")
	}
	if factory == nil {
		return NewError(KindConfiguration, "", fmt.Sprintf("nil factory for provider %q", id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = factory
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id ProviderID, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// Unregister removes a provider from the registry.
// It is a no-op if the provider is not registered.
func (r *Registry) Unregister(id ProviderID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, id)
}

// Resolve returns the factory registered for id.
func (r *Registry) Resolve(id ProviderID) (Factory, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, &Error{
			Kind: KindConfiguration,
			Msg:  fmt.Sprintf("provider not registered: %q (register it with Builder.RegisterProvider)", id),
		}
	}
	return factory, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ProviderID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

// IDs returns the registered provider IDs, sorted.
func (r *Registry) IDs() []ProviderID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ProviderID, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Builder is the registration surface handed to [Configure].
type Builder struct {
	registry *Registry
	errs     []error
}

// RegisterProvider registers factory under id. Registration errors are
// collected and returned together by [Configure].
func (b *Builder) RegisterProvider(id ProviderID, factory Factory) *Builder {
	if err := b.registry.Register(id, factory); err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Registry returns the registry being configured.
func (b *Builder) Registry() *Registry {
	return b.registry
}
