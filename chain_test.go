package nexus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/github"
)

// newGitHubConnector registers a GitHub provider for octocat/hello-world
// that talks to handler.
func newGitHubConnector(t *testing.T, handler http.HandlerFunc) *nexus.Connector {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return nexus.MustConfigure(func(b *nexus.Builder) {
		b.RegisterProvider(github.ID, func() nexus.Provider {
			return github.MustNew("octocat", "hello-world",
				github.WithBaseURL(server.URL),
				github.WithHTTPClient(server.Client()),
			)
		})
	})
}

func TestGitHubChain(t *testing.T) {
	t.Run("rejected token surfaces as authorization error", func(t *testing.T) {
		c := newGitHubConnector(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer bad", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Bad credentials"}`))
		})

		conn, err := c.Connect(github.ID)
		require.NoError(t, err)
		conn, err = conn.WithToken("bad")
		require.NoError(t, err)
		issues, err := nexus.As[github.IssueActions](conn)
		require.NoError(t, err)

		_, err = issues.GetIssues(context.Background(), github.StateOpen)
		require.Error(t, err)
		assert.True(t, nexus.IsAuthorization(err))
		assert.ErrorIs(t, err, nexus.ErrAuthorization)
		assert.Equal(t, http.StatusUnauthorized, nexus.StatusCodeOf(err))
	})

	t.Run("create then update", func(t *testing.T) {
		c := newGitHubConnector(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			switch {
			case r.Method == http.MethodPost && r.URL.Path == "/repos/octocat/hello-world/issues":
				assert.Equal(t, map[string]string{"title": "T", "body": "B"}, body)
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"id": 1, "number": 31, "title": "T", "state": "open"}`))
			case r.Method == http.MethodPatch && r.URL.Path == "/repos/octocat/hello-world/issues/31":
				assert.Equal(t, map[string]string{"title": "T2", "state": "closed"}, body)
				w.Write([]byte(`{"id": 1, "number": 31, "title": "T2", "state": "closed"}`))
			default:
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		})
		c.SetDefaultToken("good")

		conn, err := c.Connect(github.ID)
		require.NoError(t, err)
		conn, err = conn.WithDefaultToken()
		require.NoError(t, err)
		issues := nexus.MustAs[github.IssueActions](conn)
		ctx := context.Background()

		created, err := issues.CreateIssue(ctx, "T", "B")
		require.NoError(t, err)
		assert.Equal(t, "T", created.Title)
		assert.Equal(t, "open", created.State)
		assert.Equal(t, 31, created.Number)

		updated, err := issues.UpdateIssue(ctx, created.Number, github.IssueUpdate{
			Title: github.Ptr("T2"),
			State: github.Ptr(github.StateClosed),
		})
		require.NoError(t, err)
		assert.Equal(t, "T2", updated.Title)
		assert.Equal(t, "closed", updated.State)
	})

	t.Run("cast without token refuses to send", func(t *testing.T) {
		c := newGitHubConnector(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		conn, err := c.Connect(github.ID)
		require.NoError(t, err)
		issues, err := nexus.As[github.IssueActions](conn)
		require.NoError(t, err)

		_, err = issues.GetLabels(context.Background())
		assert.True(t, nexus.IsInvalidOperation(err))
	})
}
