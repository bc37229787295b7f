package service

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/awnumar/memguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/utilkit/internal/crypto/domain"
)

func TestKeyFileStore_EnsureKey(t *testing.T) {
	t.Run("creates key file once", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "app")
		store := NewKeyFileStore(dir)

		key, created, err := store.EnsureKey()
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, filepath.Join(dir, ".key"), store.Path())

		line := openedKey(t, key)
		_, err = cryptoDomain.DecodeKeyMaterial([]byte(line))
		require.NoError(t, err)

		again, created, err := store.EnsureKey()
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, line, openedKey(t, again))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1, "temporary files must be removed")
		assert.Equal(t, ".key", entries[0].Name())
	})

	t.Run("replaces an empty key file", func(t *testing.T) {
		dir := t.TempDir()
		store := NewKeyFileStore(dir)
		require.NoError(t, os.WriteFile(store.Path(), nil, 0o600))

		key, created, err := store.EnsureKey()
		require.NoError(t, err)
		assert.True(t, created)

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, openedKey(t, key), openedKey(t, loaded))
	})

	t.Run("keeps a corrupted key file", func(t *testing.T) {
		store := NewKeyFileStore(t.TempDir())
		require.NoError(t, os.WriteFile(store.Path(), []byte("garbage\n"), 0o600))

		_, _, err := store.EnsureKey()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyMaterial)

		content, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Equal(t, "garbage\n", string(content))
	})

	t.Run("restricts permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions")
		}
		dir := filepath.Join(t.TempDir(), "app")
		store := NewKeyFileStore(dir)

		_, _, err := store.EnsureKey()
		require.NoError(t, err)

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		dirInfo, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
	})

	t.Run("concurrent initialisation agrees on one key", func(t *testing.T) {
		dir := t.TempDir()

		const workers = 8
		keys := make([]*memguard.Enclave, workers)
		created := make([]bool, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				keys[i], created[i], errs[i] = NewKeyFileStore(dir).EnsureKey()
			}()
		}
		wg.Wait()

		stored, err := NewKeyFileStore(dir).Load()
		require.NoError(t, err)
		want := openedKey(t, stored)

		publishers := 0
		for i := range workers {
			require.NoError(t, errs[i])
			assert.Equal(t, want, openedKey(t, keys[i]))
			if created[i] {
				publishers++
			}
		}
		assert.Equal(t, 1, publishers)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("short random source leaves no file", func(t *testing.T) {
		store := &KeyFileStore{dir: t.TempDir(), random: emptyReader{}}

		_, _, err := store.EnsureKey()
		require.Error(t, err)

		exists, err := store.Exists()
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestKeyFileStore_Load(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewKeyFileStore(t.TempDir()).Load()
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterialNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		store := NewKeyFileStore(t.TempDir())
		require.NoError(t, os.WriteFile(store.Path(), nil, 0o600))

		_, err := store.Load()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyMaterial)
	})

	t.Run("corrupted file", func(t *testing.T) {
		store := NewKeyFileStore(t.TempDir())
		require.NoError(t, os.WriteFile(store.Path(), []byte("garbage\n"), 0o600))

		_, err := store.Load()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyMaterial)
	})
}

func TestKeyFileStore_Delete(t *testing.T) {
	store := NewKeyFileStore(t.TempDir())

	err := store.Delete()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterialNotFound)

	first, _, err := store.EnsureKey()
	require.NoError(t, err)
	firstLine := openedKey(t, first)

	require.NoError(t, store.Delete())
	exists, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	second, created, err := store.EnsureKey()
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, firstLine, openedKey(t, second))
}

func TestDefaultKeyDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/config-home")
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honoured on linux")
	}

	dir, err := DefaultKeyDir("utilkit")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/config-home/utilkit", dir)
}

// openedKey returns the sealed key line as text.
func openedKey(t *testing.T, key *memguard.Enclave) string {
	t.Helper()
	require.NotNil(t, key)

	buf, err := key.Open()
	require.NoError(t, err)
	defer buf.Destroy()
	return buf.String()
}

type emptyReader struct{}

func (emptyReader) Read(p []byte) (int, error) {
	return 0, os.ErrClosed
}
