package tool

import (
	"context"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/twitter"
)

// PostTweetArgs are the arguments of twitter_post_tweet.
type PostTweetArgs struct {
	Text string `json:"text" desc:"Post text, at most 280 characters" required:"true"`
}

// TwitterTools returns tools for the post actions of the provider
// registered under twitter.ID.
func TwitterTools(c *nexus.Connector) []Registration {
	return []Registration{
		Func("twitter_post_tweet", "Publish a post on Twitter",
			func(ctx context.Context, args PostTweetArgs) (string, error) {
				posts, err := capability[twitter.PostActions](c, twitter.ID)
				if err != nil {
					return "", err
				}
				tweet, err := posts.PostTweet(ctx, args.Text)
				if err != nil {
					return "", err
				}
				return jsonResult(tweet)
			}),
	}
}
