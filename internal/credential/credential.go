// Package credential keeps provider tokens in the system keychain.
//
// Platform requirements follow github.com/zalando/go-keyring: Keychain on
// macOS, Secret Service (libsecret/kwallet) on Linux, Credential Manager
// on Windows. Tokens are stored under one service with the provider ID as
// the account name.
package credential

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/onurkarakus/nexus"
)

// ServiceName is the default keyring service identifier.
// It can be overridden with NEXUS_KEYRING_SERVICE for test isolation.
const ServiceName = "nexus"

// ErrNotFound is returned when no token is stored for a provider.
var ErrNotFound = errors.New("credential: no stored token")

// Store reads and writes tokens in the system keychain.
type Store struct {
	service string
}

// New returns a Store for the configured service name.
func New() *Store {
	return NewWithService(serviceName())
}

// NewWithService returns a Store that uses service.
func NewWithService(service string) *Store {
	return &Store{service: service}
}

// serviceName returns the keyring service name, checking the environment first.
func serviceName() string {
	if name := os.Getenv("NEXUS_KEYRING_SERVICE"); name != "" {
		return name
	}
	return ServiceName
}

// Service returns the keyring service name.
func (s *Store) Service() string { return s.service }

// Get returns the token stored for provider.
func (s *Store) Get(provider nexus.ProviderID) (string, error) {
	token, err := keyring.Get(s.service, string(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keychain get %s: %w", provider, err)
	}
	return token, nil
}

// Set stores token for provider, replacing any existing one.
func (s *Store) Set(provider nexus.ProviderID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("credential: empty token for %s", provider)
	}
	if err := keyring.Set(s.service, string(provider), token); err != nil {
		return fmt.Errorf("keychain set %s: %w", provider, err)
	}
	return nil
}

// Delete removes the token stored for provider. Deleting a missing token
// returns ErrNotFound.
func (s *Store) Delete(provider nexus.ProviderID) error {
	err := keyring.Delete(s.service, string(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("keychain delete %s: %w", provider, err)
	}
	return nil
}

// Lookup returns the stored token and whether one exists. Keychain
// failures other than a missing entry are treated as absent.
func (s *Store) Lookup(provider nexus.ProviderID) (string, bool) {
	token, err := s.Get(provider)
	return token, err == nil && token != ""
}

// Mask shortens a token for display, keeping the first and last four
// characters.
func Mask(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
