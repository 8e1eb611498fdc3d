package nexus

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies errors by what went wrong.
type ErrorKind string

const (
	// KindConfiguration indicates a setup defect: an unregistered provider
	// or a missing default credential. Never retried.
	KindConfiguration ErrorKind = "configuration"

	// KindAuthorization indicates the remote service rejected the
	// credentials (HTTP 401/403).
	KindAuthorization ErrorKind = "authorization"

	// KindNotFound indicates the remote resource does not exist (HTTP 404).
	KindNotFound ErrorKind = "not_found"

	// KindAPI covers any other non-success response and empty or
	// undecodable response bodies.
	KindAPI ErrorKind = "api"

	// KindCapabilityNotSupported indicates a failed capability cast.
	KindCapabilityNotSupported ErrorKind = "capability_not_supported"

	// KindUnsupportedOperation indicates a provider cannot accept
	// credentials through the generic authentication step.
	KindUnsupportedOperation ErrorKind = "unsupported_operation"

	// KindInvalidOperation indicates an operation was invoked in the wrong
	// state, e.g. before authentication.
	KindInvalidOperation ErrorKind = "invalid_operation"

	// KindValidation indicates invalid caller arguments. Detected before
	// any network call.
	KindValidation ErrorKind = "validation"
)

// Sentinels for use with errors.Is. An *Error matches a sentinel when
// their kinds are equal.
var (
	ErrConfiguration          = &Error{Kind: KindConfiguration}
	ErrAuthorization          = &Error{Kind: KindAuthorization}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrAPI                    = &Error{Kind: KindAPI}
	ErrCapabilityNotSupported = &Error{Kind: KindCapabilityNotSupported}
	ErrUnsupportedOperation   = &Error{Kind: KindUnsupportedOperation}
	ErrInvalidOperation       = &Error{Kind: KindInvalidOperation}
	ErrValidation             = &Error{Kind: KindValidation}
)

// Error is the error type returned by connectors, connections and
// providers. It carries enough context to diagnose a failure without
// re-running the request.
type Error struct {
	Kind       ErrorKind
	Msg        string
	Provider   string // provider name, if known
	Capability string // requested capability, for failed casts
	Method     string // HTTP method, for remote failures
	URL        string // request URL, for remote failures
	StatusCode int    // HTTP status code, 0 if not applicable
	Cause      error  // underlying error
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("nexus")
	if e.Provider != "" {
		b.WriteString(": ")
		b.WriteString(e.Provider)
	}
	b.WriteString(": ")
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d", e.StatusCode)
		if e.URL != "" {
			fmt.Fprintf(&b, " %s %s", e.Method, e.URL)
		}
		b.WriteString(")")
	} else if e.URL != "" {
		fmt.Fprintf(&b, " (%s %s)", e.Method, e.URL)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, provider, msg string) *Error {
	return &Error{Kind: kind, Provider: provider, Msg: msg}
}

// ValidationError creates a KindValidation error.
func ValidationError(provider, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Provider: provider, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusCodeOf returns the HTTP status code carried by err, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }

// IsAuthorization reports whether err is an authorization failure.
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAPI reports whether err is a generic API failure.
func IsAPI(err error) bool { return KindOf(err) == KindAPI }

// IsCapabilityNotSupported reports whether err is a failed capability cast.
func IsCapabilityNotSupported(err error) bool { return KindOf(err) == KindCapabilityNotSupported }

// IsUnsupportedOperation reports whether err is an unsupported operation.
func IsUnsupportedOperation(err error) bool { return KindOf(err) == KindUnsupportedOperation }

// IsInvalidOperation reports whether err is an invalid operation.
func IsInvalidOperation(err error) bool { return KindOf(err) == KindInvalidOperation }

// IsValidation reports whether err is an argument validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
