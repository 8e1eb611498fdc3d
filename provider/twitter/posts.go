package twitter

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/onurkarakus/nexus"
)

// MaxTweetLength is the character limit for a standard post.
const MaxTweetLength = 280

// Tweet is a created post.
type Tweet struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PostActions is the posting capability of a Twitter provider.
type PostActions interface {
	// PostTweet publishes text and returns the created post.
	PostTweet(ctx context.Context, text string) (*Tweet, error)
}

var (
	_ nexus.Provider             = (*Provider)(nil)
	_ nexus.CapabilityAdvertiser = (*Provider)(nil)
	_ nexus.SelfAuthenticated    = (*Provider)(nil)
	_ PostActions                = (*Provider)(nil)
)

type postTweetRequest struct {
	Text string `json:"text"`
}

type postTweetResponse struct {
	Data *Tweet `json:"data"`
}

// PostTweet publishes text as a new post.
func (p *Provider) PostTweet(ctx context.Context, text string) (*Tweet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nexus.ValidationError(providerName, "tweet text is required")
	}
	if n := utf8.RuneCountInString(text); n > MaxTweetLength {
		return nil, nexus.ValidationError(providerName, "tweet text is %d characters, limit is %d", n, MaxTweetLength)
	}

	var resp postTweetResponse
	if err := p.client.Post(ctx, "2/tweets", postTweetRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return nil, &nexus.Error{
			Kind:     nexus.KindAPI,
			Provider: providerName,
			Msg:      "tweet was created but the response body was empty or invalid",
			Method:   "POST",
			URL:      p.client.URL("2/tweets"),
		}
	}
	return resp.Data, nil
}
