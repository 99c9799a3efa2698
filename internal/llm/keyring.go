package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the OS keyring service name API keys are filed
// under.
const DefaultKeyringService = "mathexplorer"

// KeyStore keeps provider API keys in the OS keyring.
type KeyStore struct {
	service string
}

// NewKeyStore creates a KeyStore. An empty service uses
// DefaultKeyringService.
func NewKeyStore(service string) *KeyStore {
	if strings.TrimSpace(service) == "" {
		service = DefaultKeyringService
	}
	return &KeyStore{service: service}
}

func (k *KeyStore) account(provider string) string {
	return provider + "/apikey"
}

// SetAPIKey stores the key for provider.
func (k *KeyStore) SetAPIKey(provider, key string) error {
	if !knownProvider(provider) {
		return fmt.Errorf("keyring: unknown provider %q", provider)
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("keyring: empty API key for %s", provider)
	}
	if err := keyring.Set(k.service, k.account(provider), key); err != nil {
		return fmt.Errorf("keyring: set %s key: %w", provider, err)
	}
	return nil
}

// APIKey returns the stored key for provider, or "" when none is stored or
// the keyring is unavailable.
func (k *KeyStore) APIKey(provider string) (string, error) {
	v, err := keyring.Get(k.service, k.account(provider))
	if err == nil {
		return v, nil
	}
	if errors.Is(err, keyring.ErrNotFound) || isKeyringUnavailable(err) {
		return "", nil
	}
	return "", fmt.Errorf("keyring: get %s key: %w", provider, err)
}

// DeleteAPIKey removes the stored key for provider. Missing keys are not an
// error.
func (k *KeyStore) DeleteAPIKey(provider string) error {
	err := keyring.Delete(k.service, k.account(provider))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring: delete %s key: %w", provider, err)
	}
	return nil
}

func isKeyringUnavailable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "secret service") ||
		strings.Contains(msg, "dbus") ||
		strings.Contains(msg, "no keychain") ||
		strings.Contains(msg, "keyring backend not available")
}
