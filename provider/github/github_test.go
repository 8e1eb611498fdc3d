package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurkarakus/nexus"
)

// newTestProvider starts a server with handler and returns an
// authenticated provider for octocat/hello-world pointed at it.
func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New("octocat", "hello-world", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	require.NoError(t, p.Authenticate("test-token"))
	return p
}

func TestNew(t *testing.T) {
	t.Run("requires owner and repo", func(t *testing.T) {
		_, err := New("", "repo")
		assert.True(t, nexus.IsValidation(err))

		_, err = New("owner", "  ")
		assert.True(t, nexus.IsValidation(err))
	})

	t.Run("MustNew panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() { MustNew("", "") })
	})

	t.Run("nil doer keeps the default client", func(t *testing.T) {
		p := MustNew("octocat", "hello-world", WithHTTPClient(nil))
		assert.Equal(t, nexus.Doer(http.DefaultClient), p.doer)
	})

	t.Run("reports identity and capabilities", func(t *testing.T) {
		p := MustNew("octocat", "hello-world")
		assert.Equal(t, "GitHub", p.Name())
		assert.Equal(t, "octocat", p.Owner())
		assert.Equal(t, "hello-world", p.Repo())
		assert.Equal(t, []nexus.Capability{CapabilityIssues}, p.Capabilities())
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("rejects empty token", func(t *testing.T) {
		p := MustNew("octocat", "hello-world")
		err := p.Authenticate("")
		assert.True(t, nexus.IsConfiguration(err))
	})

	t.Run("sends bearer token and GitHub headers", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
			assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			assert.Equal(t, "/repos/octocat/hello-world/labels", r.URL.Path)
			w.Write([]byte(`[]`))
		})

		_, err := p.GetLabels(context.Background())
		require.NoError(t, err)
	})

	t.Run("re-authenticating replaces the token", func(t *testing.T) {
		var got string
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		})
		require.NoError(t, p.Authenticate("second-token"))

		_, err := p.GetLabels(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer second-token", got)
	})

	t.Run("custom user agent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "nexus-test/1.0", r.Header.Get("User-Agent"))
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		p := MustNew("octocat", "hello-world", WithBaseURL(server.URL+"/"), WithUserAgent("nexus-test/1.0"))
		require.NoError(t, p.Authenticate("t"))
		_, err := p.GetLabels(context.Background())
		require.NoError(t, err)
	})
}

func TestUnauthenticatedCallsSendNothing(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	p := MustNew("octocat", "hello-world", WithBaseURL(server.URL))
	ctx := context.Background()

	calls := map[string]func() error{
		"GetIssues": func() error { _, err := p.GetIssues(ctx, StateOpen); return err },
		"GetIssue":  func() error { _, err := p.GetIssue(ctx, 1); return err },
		"CreateIssue": func() error {
			_, err := p.CreateIssue(ctx, "title", "body")
			return err
		},
		"UpdateIssue": func() error {
			_, err := p.UpdateIssue(ctx, 1, IssueUpdate{Title: Ptr("x")})
			return err
		},
		"CreateComment": func() error { _, err := p.CreateComment(ctx, 1, "hi"); return err },
		"GetLabels":     func() error { _, err := p.GetLabels(ctx); return err },
		"AddLabels":     func() error { _, err := p.AddLabels(ctx, 1, "bug"); return err },
		"RemoveLabel":   func() error { _, err := p.RemoveLabel(ctx, 1, "bug"); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.True(t, nexus.IsInvalidOperation(err), "got %v", err)
		})
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Bad credentials"}`, nexus.IsAuthorization},
		{"forbidden", http.StatusForbidden, `{"message":"Resource not accessible by integration"}`, nexus.IsAuthorization},
		{"not found", http.StatusNotFound, `{"message":"Not Found"}`, nexus.IsNotFound},
		{"validation failed", http.StatusUnprocessableEntity, `{"message":"Validation Failed"}`, nexus.IsAPI},
		{"server error", http.StatusInternalServerError, `oops`, nexus.IsAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := p.GetIssue(context.Background(), 7)
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
			assert.Equal(t, tt.status, nexus.StatusCodeOf(err))
		})
	}

	t.Run("not found message includes the request URI", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := p.GetIssue(context.Background(), 99)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/repos/octocat/hello-world/issues/99")
	})

	t.Run("empty success body is an API error", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		_, err := p.GetIssue(context.Background(), 1)
		assert.True(t, nexus.IsAPI(err))
	})

	t.Run("null success body is an API error", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`null`))
		})

		_, err := p.CreateIssue(context.Background(), "t", "b")
		assert.True(t, nexus.IsAPI(err))
	})
}

func TestContextCancellation(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.GetLabels(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, nexus.ErrorKind(""), nexus.KindOf(err))
}
