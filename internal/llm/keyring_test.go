package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	keys := NewKeyStore("")

	got, err := keys.APIKey(ProviderGemini)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, keys.SetAPIKey(ProviderGemini, "g-key"))
	got, err = keys.APIKey(ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, "g-key", got)

	raw, err := keyring.Get(DefaultKeyringService, "gemini/apikey")
	require.NoError(t, err)
	assert.Equal(t, "g-key", raw)

	require.NoError(t, keys.DeleteAPIKey(ProviderGemini))
	require.NoError(t, keys.DeleteAPIKey(ProviderGemini), "deleting a missing key is not an error")
	got, err = keys.APIKey(ProviderGemini)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKeyStore_RejectsBadInput(t *testing.T) {
	keyring.MockInit()
	keys := NewKeyStore("mathexplorer-test")

	assert.Error(t, keys.SetAPIKey("abacus", "k"))
	assert.Error(t, keys.SetAPIKey(ProviderOpenAI, "   "))
	assert.Error(t, keys.SetAPIKey(ProviderMock, "k"), "mock has no key")
}

func TestKeyStore_BackendFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("boom"))
	t.Cleanup(keyring.MockInit)
	keys := NewKeyStore("mathexplorer-test")

	_, err := keys.APIKey(ProviderGemini)
	assert.Error(t, err)
	assert.Error(t, keys.SetAPIKey(ProviderGemini, "g-key"))
}

func TestIsKeyringUnavailable(t *testing.T) {
	assert.True(t, isKeyringUnavailable(errors.New("The name org.freedesktop.secrets was not provided by any .service files: dbus")))
	assert.True(t, isKeyringUnavailable(errors.New("Secret Service is not available")))
	assert.False(t, isKeyringUnavailable(errors.New("permission denied")))
}
