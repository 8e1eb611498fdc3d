package nexus

// ProviderID identifies a registered provider.
type ProviderID string

// String returns the provider identifier.
func (id ProviderID) String() string { return string(id) }

// Capability names a group of operations a provider may support.
// Capabilities are advertised for discovery only; casting a connection
// to a capability interface is always checked with [As].
type Capability string

// String returns the capability tag.
func (c Capability) String() string { return string(c) }

// Provider is implemented by every service integration.
// A provider owns its authentication state for its lifetime.
type Provider interface {
	// Name returns a human-readable provider name (e.g., "GitHub").
	Name() string

	// Authenticate stores the credential for subsequent operations.
	Authenticate(credential string) error
}

// Factory constructs a fresh Provider. It is invoked once per Connect.
type Factory func() Provider

// CapabilityAdvertiser is an optional interface for providers that list
// the capability tags they implement.
type CapabilityAdvertiser interface {
	Capabilities() []Capability
}

// SelfAuthenticated marks providers whose credentials are fixed at
// construction time. Connections refuse to inject tokens into them.
type SelfAuthenticated interface {
	SelfAuthenticated()
}
