// Package github provides a GitHub provider for the nexus pipeline.
//
// A Provider is bound to a single repository and exposes the
// [IssueActions] capability: listing, reading, creating and updating
// issues, commenting, and managing labels. Requests go to
// https://api.github.com/repos/{owner}/{repo}/ with a bearer token.
//
// # Usage
//
//	connector, _ := nexus.Configure(func(b *nexus.Builder) {
//	    b.RegisterProvider(github.ID, func() nexus.Provider {
//	        return github.MustNew("octocat", "hello-world")
//	    })
//	})
//
//	conn, _ := connector.Connect(github.ID)
//	conn, err := conn.WithToken(os.Getenv("GITHUB_TOKEN"))
//	issues := nexus.MustAs[github.IssueActions](conn)
//
//	issue, err := issues.CreateIssue(ctx, "Crash on start", "Steps to reproduce...")
//	closed, err := issues.UpdateIssue(ctx, issue.Number, github.IssueUpdate{
//	    State: github.Ptr(github.StateClosed),
//	})
//
// Calling any operation before authentication fails with an
// invalid-operation error and sends nothing.
package github
