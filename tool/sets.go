package tool

import (
	"encoding/json"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/github"
	"github.com/onurkarakus/nexus/provider/twitter"
)

// ConnectorTools returns the tool sets of every provider registered on c
// under its conventional ID.
func ConnectorTools(c *nexus.Connector) []Registration {
	var regs []Registration
	if c.Registry().Has(github.ID) {
		regs = append(regs, GitHubTools(c)...)
	}
	if c.Registry().Has(twitter.ID) {
		regs = append(regs, TwitterTools(c)...)
	}
	return regs
}

// NewConnectorRegistry creates a registry holding ConnectorTools(c).
func NewConnectorRegistry(c *nexus.Connector) *Registry {
	return NewRegistry().Add(ConnectorTools(c)...)
}

// capability runs the fluent chain for one tool call: connect, authenticate
// with the connector's default credential unless the provider carries its
// own, and cast to T.
func capability[T any](c *nexus.Connector, id nexus.ProviderID) (T, error) {
	var zero T

	conn, err := c.Connect(id)
	if err != nil {
		return zero, err
	}
	if !conn.SelfAuthenticated() {
		if conn, err = conn.WithDefaultToken(); err != nil {
			return zero, err
		}
	}
	return nexus.As[T](conn)
}

func jsonResult(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
