package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/github"
)

func TestMain(m *testing.M) {
	keyring.MockInit()
	os.Exit(m.Run())
}

var envKeys = []string{
	"NEXUS_LOG_LEVEL",
	"NEXUS_GITHUB_OWNER",
	"NEXUS_GITHUB_REPO",
	"NEXUS_GITHUB_BASE_URL",
	"NEXUS_TWITTER_BASE_URL",
	"GITHUB_TOKEN",
	"GH_PAT",
	"TWITTER_API_KEY",
	"TWITTER_API_SECRET",
	"TWITTER_ACCESS_TOKEN",
	"TWITTER_ACCESS_TOKEN_SECRET",
}

// resetFlags restores every flag to its default so commands can be run
// repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg, connector = nil, nil

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { store.Delete(github.ID) })
}

func useGitHub(t *testing.T, handler http.Handler) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("NEXUS_GITHUB_OWNER", "octocat")
	t.Setenv("NEXUS_GITHUB_REPO", "hello-world")
	t.Setenv("NEXUS_GITHUB_BASE_URL", server.URL)
}

func useTwitter(t *testing.T, handler http.Handler) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("NEXUS_TWITTER_BASE_URL", server.URL)
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("TWITTER_API_SECRET", "secret")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_TOKEN_SECRET", "token-secret")
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nexus dev")
}

func TestProviders(t *testing.T) {
	t.Run("none configured", func(t *testing.T) {
		isolate(t)
		out, err := execute(t, "", "providers")
		require.NoError(t, err)
		assert.Contains(t, out, "No providers configured")
	})

	t.Run("table", func(t *testing.T) {
		isolate(t)
		useGitHub(t, http.NotFoundHandler())
		useTwitter(t, http.NotFoundHandler())

		out, err := execute(t, "", "providers")
		require.NoError(t, err)
		assert.Contains(t, out, "github")
		assert.Contains(t, out, "github.issues")
		assert.Contains(t, out, "twitter.posts")
		assert.Contains(t, out, "self")
	})

	t.Run("json", func(t *testing.T) {
		isolate(t)
		useTwitter(t, http.NotFoundHandler())

		out, err := execute(t, "", "providers", "--json")
		require.NoError(t, err)

		var infos []providerInfo
		require.NoError(t, json.Unmarshal([]byte(out), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, nexus.ProviderID("twitter"), infos[0].ID)
		assert.Equal(t, "self", infos[0].Auth)
	})
}

func TestIssues(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/octocat/hello-world/issues", r.URL.Path)
			assert.Equal(t, "closed", r.URL.Query().Get("state"))
			assert.Equal(t, "Bearer env-token", r.Header.Get("Authorization"))
			w.Write([]byte(`[{"number": 7, "title": "Crash on start", "state": "closed"}]`))
		}))

		out, err := execute(t, "", "issues", "list", "--state", "closed")
		require.NoError(t, err)
		assert.Contains(t, out, "#7")
		assert.Contains(t, out, "Crash on start")
	})

	t.Run("create", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			body := decodeBody(t, r)
			assert.Equal(t, "New bug", body["title"])
			assert.Equal(t, "details", body["body"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"number": 12, "title": "New bug", "state": "open", "html_url": "https://github.com/octocat/hello-world/issues/12"}`))
		}))

		out, err := execute(t, "", "issues", "create", "--title", "New bug", "--body", "details")
		require.NoError(t, err)
		assert.Contains(t, out, "#12 New bug [open]")
		assert.Contains(t, out, "issues/12")
	})

	t.Run("update sends only changed fields", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/repos/octocat/hello-world/issues/3", r.URL.Path)
			assert.Equal(t, map[string]any{"state": "closed"}, decodeBody(t, r))
			w.Write([]byte(`{"number": 3, "title": "Old", "state": "closed"}`))
		}))

		out, err := execute(t, "", "issues", "update", "3", "--state", "closed")
		require.NoError(t, err)
		assert.Contains(t, out, "[closed]")
	})

	t.Run("close", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, map[string]any{"state": "closed"}, decodeBody(t, r))
			w.Write([]byte(`{"number": 4, "title": "Done", "state": "closed"}`))
		}))

		_, err := execute(t, "", "issues", "close", "4")
		require.NoError(t, err)
	})

	t.Run("comment", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/octocat/hello-world/issues/5/comments", r.URL.Path)
			assert.Equal(t, "thanks", decodeBody(t, r)["body"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 99, "body": "thanks"}`))
		}))

		out, err := execute(t, "", "issues", "comment", "5", "--body", "thanks")
		require.NoError(t, err)
		assert.Contains(t, out, "Comment 99 added to #5")
	})

	t.Run("json output", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"number": 8, "title": "T", "state": "open"}`))
		}))

		out, err := execute(t, "", "issues", "get", "8", "--json")
		require.NoError(t, err)

		var issue github.Issue
		require.NoError(t, json.Unmarshal([]byte(out), &issue))
		assert.Equal(t, 8, issue.Number)
	})

	t.Run("missing token", func(t *testing.T) {
		isolate(t)
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))

		_, err := execute(t, "", "issues", "list")
		require.Error(t, err)
		assert.True(t, nexus.IsConfiguration(err))
		assert.Contains(t, err.Error(), "nexus auth login")
	})

	t.Run("github not configured", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "", "issues", "list")
		require.Error(t, err)
		assert.True(t, nexus.IsConfiguration(err))
	})

	t.Run("invalid number", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "", "issues", "get", "abc")
		assert.ErrorContains(t, err, `invalid issue number "abc"`)
	})

	t.Run("not found", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
		}))

		_, err := execute(t, "", "issues", "get", "404")
		assert.True(t, nexus.IsNotFound(err))
	})
}

func TestLabels(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/octocat/hello-world/issues/1/labels", r.URL.Path)
			assert.Equal(t, []any{"bug", "help wanted"}, decodeBody(t, r)["labels"])
			w.Write([]byte(`[{"name": "bug", "color": "d73a4a"}, {"name": "help wanted", "color": "008672"}]`))
		}))

		out, err := execute(t, "", "labels", "add", "1", "bug", "help wanted")
		require.NoError(t, err)
		assert.Contains(t, out, "help wanted")
		assert.Contains(t, out, "#d73a4a")
	})

	t.Run("remove", func(t *testing.T) {
		isolate(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/repos/octocat/hello-world/issues/1/labels/bug", r.URL.Path)
			w.Write([]byte(`[]`))
		}))

		out, err := execute(t, "", "labels", "remove", "1", "bug")
		require.NoError(t, err)
		assert.Contains(t, out, "No labels")
	})

	t.Run("requires a label", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "", "labels", "add", "1")
		assert.Error(t, err)
	})
}

func TestTweet(t *testing.T) {
	isolate(t)
	useTwitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "OAuth "))
		assert.Equal(t, "hello world", decodeBody(t, r)["text"])
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"id": "1445880548472328192", "text": "hello world"}}`))
	}))

	out, err := execute(t, "", "tweet", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, out, "Posted tweet 1445880548472328192")
}

func TestAuth(t *testing.T) {
	t.Run("login with flag is used by the chain", func(t *testing.T) {
		isolate(t)
		useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		}))

		_, err := execute(t, "", "auth", "login", "--token", "stored-token")
		require.NoError(t, err)

		out, err := execute(t, "", "issues", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No issues found")
	})

	t.Run("login from stdin", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "piped-token-value\n", "auth", "login")
		require.NoError(t, err)

		token, err := store.Get(github.ID)
		require.NoError(t, err)
		assert.Equal(t, "piped-token-value", token)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "\n", "auth", "login")
		assert.Error(t, err)
	})

	t.Run("status", func(t *testing.T) {
		isolate(t)
		out, err := execute(t, "", "auth", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "not authenticated")

		_, err = execute(t, "", "auth", "login", "--token", "ghp_1234567890abcd")
		require.NoError(t, err)
		out, err = execute(t, "", "auth", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "keychain")
		assert.Contains(t, out, "ghp_**********abcd")
		assert.NotContains(t, out, "1234567890")

		t.Setenv("GITHUB_TOKEN", "env-token-value")
		out, err = execute(t, "", "auth", "status", "--json")
		require.NoError(t, err)
		var status authStatus
		require.NoError(t, json.Unmarshal([]byte(out), &status))
		assert.Equal(t, "env", status.Source)
	})

	t.Run("logout", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "", "auth", "login", "--token", "stored-token")
		require.NoError(t, err)

		out, err := execute(t, "", "auth", "logout")
		require.NoError(t, err)
		assert.Contains(t, out, "removed")

		out, err = execute(t, "", "auth", "logout")
		require.NoError(t, err)
		assert.Contains(t, out, "No stored GitHub token")
	})
}

func TestStatus(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "env-token")
	useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "bug"}, {"name": "docs"}]`))
	}))
	useTwitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("twitter should not be called")
	}))

	out, err := execute(t, "", "status", "--json")
	require.NoError(t, err)

	var results []providerStatus
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, providerStatus{ID: github.ID, Status: "ok", Detail: "2 labels"}, results[0])
	assert.Equal(t, "ok", results[1].Status)
	assert.Equal(t, "self-authenticated", results[1].Detail)
}

func TestStatusReportsFailures(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "bad-token")
	useGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Bad credentials"}`, http.StatusUnauthorized)
	}))

	out, err := execute(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "authorization")
}

func TestReadSecret(t *testing.T) {
	b, err := readSecret(strings.NewReader("  abc  \n"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))

	b, err = readSecret(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", string(b))

	_, err = readSecret(strings.NewReader(""))
	assert.ErrorIs(t, err, io.EOF)
}
