package nexus

import "time"

// EventType identifies the kind of event occurring in a fluent chain.
type EventType string

const (
	// EventConnect fires when a provider has been constructed for a chain.
	EventConnect EventType = "connect"

	// EventAuthenticate fires after credentials were handed to the provider.
	EventAuthenticate EventType = "authenticate"

	// EventCapability fires after a successful capability cast.
	EventCapability EventType = "capability"

	// EventError fires when an orchestration step fails.
	EventError EventType = "error"
)

// Event represents an observable step of a fluent chain.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// ChainID identifies the connection the event belongs to.
	ChainID string

	// Provider is the registered ID of the provider.
	Provider ProviderID

	// Capability is the requested capability for EventCapability and
	// failed casts.
	Capability string

	// Error contains the error for EventError.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
