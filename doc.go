// Package nexus provides a uniform fluent pipeline over heterogeneous
// third-party APIs.
//
// Every interaction follows the same chain:
//
//	connect → authenticate → cast to capability → call
//
// Providers (GitHub, Twitter, ...) implement a minimal [Provider] contract
// plus zero or more capability interfaces. A [Connector] maps provider IDs
// to factories; each [Connector.Connect] call builds a fresh provider and
// wraps it in a [Connection]; [As] checks at the point of use whether the
// provider implements the capability the caller asks for.
//
// # Basic Usage
//
//	connector, err := nexus.Configure(func(b *nexus.Builder) {
//	    b.RegisterProvider(github.ID, func() nexus.Provider {
//	        return github.MustNew("octocat", "hello-world")
//	    })
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, err := connector.Connect(github.ID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := conn.WithToken(os.Getenv("GITHUB_TOKEN")); err != nil {
//	    log.Fatal(err)
//	}
//	issues, err := nexus.As[github.IssueActions](conn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	issue, err := issues.CreateIssue(ctx, "Title", "Body")
//
// # Default Credential
//
// A connector can hold one default credential used by
// [Connection.WithDefaultToken]:
//
//	connector.SetDefaultToken(os.Getenv("GITHUB_TOKEN"))
//	conn, _ := connector.Connect(github.ID)
//	conn, err := conn.WithDefaultToken()
//
// # Self-Authenticated Providers
//
// Some providers take their credentials at construction (Twitter's four
// OAuth 1.0a secrets). They implement [SelfAuthenticated]; the
// authentication step is skipped and the connection is cast directly:
//
//	conn, _ := connector.Connect(twitter.ID)
//	posts, err := nexus.As[twitter.PostActions](conn)
//	tweet, err := posts.PostTweet(ctx, "hello")
//
// # Errors
//
// All failures are reported as [*Error] values with a fixed [ErrorKind].
// Use the Is* helpers or errors.Is with the Err* sentinels:
//
//	if nexus.IsAuthorization(err) { ... }
//	if errors.Is(err, nexus.ErrNotFound) { ... }
//
// Context cancellation is returned as the context's own error, not as a
// domain kind.
package nexus
