package nexus

import "net/http"

// Doer sends HTTP requests. *http.Client satisfies it; tests and callers
// can substitute their own transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
