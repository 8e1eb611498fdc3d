// Package twitter provides a Twitter (X) API v2 provider for the nexus
// pipeline.
//
// The provider signs every request with OAuth 1.0a user context, so it
// takes its four keys at construction and is marked self-authenticated:
// cast the connection directly instead of calling WithToken.
//
//	conn, _ := connector.Connect(twitter.ID)
//	posts, err := nexus.As[twitter.PostActions](conn)
//	tweet, err := posts.PostTweet(ctx, "hello from nexus")
package twitter
