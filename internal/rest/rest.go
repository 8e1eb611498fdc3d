// Package rest implements the JSON request helper shared by providers.
//
// A Client checks that its provider is authenticated, encodes the request
// body, lets the provider attach credentials and headers, sends the
// request and maps non-2xx responses onto the nexus error kinds.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/onurkarakus/nexus"
)

// maxErrorBody bounds how much of an error response is kept for messages.
const maxErrorBody = 64 << 10

// Config holds configuration for creating a Client.
type Config struct {
	// Provider is the provider name used in error messages.
	Provider string

	// BaseURL is prepended to every request path.
	BaseURL string

	// Doer sends requests. Defaults to http.DefaultClient.
	Doer nexus.Doer

	// Logger is used for request diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Authenticated reports whether credentials are available. When it
	// returns false, requests fail with an invalid-operation error before
	// anything is sent. Nil means always authenticated.
	Authenticated func() bool

	// Authorize attaches credentials and provider headers to a request.
	Authorize func(req *http.Request) error
}

// Client sends JSON requests on behalf of one provider instance.
type Client struct {
	provider      string
	baseURL       string
	doer          nexus.Doer
	logger        *slog.Logger
	authenticated func() bool
	authorize     func(req *http.Request) error
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	doer := cfg.Doer
	if doer == nil {
		doer = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		provider:      cfg.Provider,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		doer:          doer,
		logger:        logger,
		authenticated: cfg.Authenticated,
		authorize:     cfg.Authorize,
	}
}

// URL returns the absolute URL for path.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.baseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Get sends a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post sends a POST request with a JSON body and decodes the response.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Patch sends a PATCH request with a JSON body and decodes the response.
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPatch, path, body, result)
}

// Delete sends a DELETE request and decodes the response, if any.
func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, result)
}

// Do executes a request. body is JSON-encoded when non-nil; the response
// is decoded into result when result is non-nil. An empty or null body on
// success is an API error when a result was expected.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	if c.authenticated != nil && !c.authenticated() {
		return &nexus.Error{
			Kind:     nexus.KindInvalidOperation,
			Provider: c.provider,
			Msg:      "authentication required",
		}
	}

	url := c.URL(path)

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &nexus.Error{Kind: nexus.KindAPI, Provider: c.provider, Msg: "encoding request body", Method: method, URL: url, Cause: err}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &nexus.Error{Kind: nexus.KindAPI, Provider: c.provider, Msg: "creating request", Method: method, URL: url, Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authorize != nil {
		if err := c.authorize(req); err != nil {
			return &nexus.Error{Kind: nexus.KindAuthorization, Provider: c.provider, Msg: "attaching credentials", Method: method, URL: url, Cause: err}
		}
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, url, ctxErr)
		}
		return &nexus.Error{Kind: nexus.KindAPI, Provider: c.provider, Msg: "request failed", Method: method, URL: url, Cause: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request complete",
		"provider", c.provider,
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return StatusError(c.provider, method, url, resp.StatusCode, data)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, url, ctxErr)
		}
		return &nexus.Error{Kind: nexus.KindAPI, Provider: c.provider, Msg: "reading response body", Method: method, URL: url, StatusCode: resp.StatusCode, Cause: err}
	}

	if result == nil {
		return nil
	}
	return Decode(c.provider, method, url, resp.StatusCode, data, result)
}

// Decode unmarshals a success body into result, rejecting empty and
// null bodies.
func Decode(provider, method, url string, status int, data []byte, result any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &nexus.Error{
			Kind:       nexus.KindAPI,
			Provider:   provider,
			Msg:        "response body was empty or invalid",
			Method:     method,
			URL:        url,
			StatusCode: status,
		}
	}
	if err := json.Unmarshal(trimmed, result); err != nil {
		return &nexus.Error{
			Kind:       nexus.KindAPI,
			Provider:   provider,
			Msg:        "response body was empty or invalid",
			Method:     method,
			URL:        url,
			StatusCode: status,
			Cause:      err,
		}
	}
	return nil
}

// StatusError maps a non-2xx response onto the nexus error kinds.
func StatusError(provider, method, url string, status int, body []byte) *nexus.Error {
	e := &nexus.Error{
		Provider:   provider,
		Method:     method,
		URL:        url,
		StatusCode: status,
	}

	detail := errorMessage(body)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.Kind = nexus.KindAuthorization
		e.Msg = "request failed due to an authorization issue; check the credential and its permissions"
	case http.StatusNotFound:
		e.Kind = nexus.KindNotFound
		e.Msg = "requested resource was not found"
	default:
		e.Kind = nexus.KindAPI
		e.Msg = "unexpected API response"
	}
	if detail != "" {
		e.Cause = errors.New(detail)
	}
	return e
}

// apiErrorBody covers the error shapes of GitHub ({"message"}) and
// Twitter v2 ({"title", "detail"}).
type apiErrorBody struct {
	Message string `json:"message"`
	Title   string `json:"title"`
	Detail  string `json:"detail"`
}

func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var parsed apiErrorBody
	if err := json.Unmarshal(trimmed, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Detail != "":
			return parsed.Detail
		case parsed.Title != "":
			return parsed.Title
		}
	}
	const limit = 200
	text := string(trimmed)
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
