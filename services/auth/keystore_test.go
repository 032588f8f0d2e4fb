package auth

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeys(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "valid_api_keys.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestKeyStoreObjectFile(t *testing.T) {
	store, err := NewKeyStore(writeKeys(t, `{"abc123": "mobile app", "def456": {"owner": "web"}}`))
	require.NoError(t, err)

	assert.True(t, store.Valid("abc123"))
	assert.True(t, store.Valid("def456"))
	assert.False(t, store.Valid("mobile app"))
	assert.False(t, store.Valid(""))
	assert.Equal(t, 2, store.Len())
}

func TestKeyStoreArrayFile(t *testing.T) {
	store, err := NewKeyStore(writeKeys(t, `["abc123", "def456"]`))
	require.NoError(t, err)

	assert.True(t, store.Valid("abc123"))
	assert.False(t, store.Valid("ABC123"))
}

func TestKeyStoreErrors(t *testing.T) {
	_, err := NewKeyStore(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConfiguration))

	_, err = NewKeyStore(writeKeys(t, `"just a string"`))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConfiguration))
}

func TestKeyStoreReload(t *testing.T) {
	path := writeKeys(t, `["old"]`)
	store, err := NewKeyStore(path)
	require.NoError(t, err)
	assert.True(t, store.Valid("old"))

	// the key set is fixed until an explicit reload
	require.NoError(t, os.WriteFile(path, []byte(`["new"]`), 0o600))
	assert.True(t, store.Valid("old"))
	assert.False(t, store.Valid("new"))

	require.NoError(t, store.Reload())
	assert.False(t, store.Valid("old"))
	assert.True(t, store.Valid("new"))

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	assert.Error(t, store.Reload())
	assert.True(t, store.Valid("new"), "a failed reload keeps the previous keys")
}

func TestStaticKeyStore(t *testing.T) {
	store := NewStaticKeyStore("k1", "k2")
	assert.True(t, store.Valid("k1"))
	assert.False(t, store.Valid("k3"))
	assert.NoError(t, store.Reload())
	assert.True(t, store.Valid("k2"))
}
