package service

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/awnumar/memguard"

	cryptoDomain "github.com/allisson/utilkit/internal/crypto/domain"
)

// KeyFileStore manages the per-user key file holding the encoded KeyMaterial.
//
// The file is published once and never rewritten, so two processes initialising at the same
// time cannot both install key material; the loser reads the winner's file. The file is never
// deleted automatically. Key lines leave the store sealed in a memguard.Enclave.
type KeyFileStore struct {
	dir    string
	random io.Reader
}

// NewKeyFileStore creates a store for the key file inside dir.
func NewKeyFileStore(dir string) *KeyFileStore {
	return &KeyFileStore{dir: dir, random: rand.Reader}
}

// DefaultKeyDir returns the per-user directory for appID under os.UserConfigDir.
func DefaultKeyDir(appID string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, appID), nil
}

// Path returns the key file path.
func (s *KeyFileStore) Path() string {
	return filepath.Join(s.dir, cryptoDomain.KeyFileName)
}

// Exists reports whether the key file is present.
func (s *KeyFileStore) Exists() (bool, error) {
	_, err := os.Stat(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat key file: %w", err)
	}
	return true, nil
}

// EnsureKey returns the sealed key file line, generating and publishing new key material
// first when the file does not exist. created reports whether this call published the file.
//
// New material is written and synced to a temporary file in the same directory, then
// published with a hard link, which fails when another initializer already published its
// key; that key is then loaded instead. A zero-length key file, left behind by an
// interrupted write, holds no key and is replaced.
func (s *KeyFileStore) EnsureKey() (key *memguard.Enclave, created bool, err error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, false, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := s.removeEmpty(); err != nil {
		return nil, false, err
	}

	key, err = s.Load()
	if err == nil || !errors.Is(err, cryptoDomain.ErrKeyMaterialNotFound) {
		return key, false, err
	}

	km, err := cryptoDomain.GenerateKeyMaterial(s.random)
	if err != nil {
		return nil, false, err
	}
	defer km.Zero()

	line := km.Encode()
	defer cryptoDomain.Zero(line)

	tmp, err := s.writeTemp(line)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = os.Remove(tmp)
	}()

	if err := os.Link(tmp, s.Path()); err != nil {
		if errors.Is(err, fs.ErrExist) {
			key, err := s.Load()
			return key, false, err
		}
		return nil, false, fmt.Errorf("failed to publish key file: %w", err)
	}

	return memguard.NewEnclave(line), true, nil
}

// Load reads, validates and seals the key file line. The file is read on every call, so a
// deleted key file is reported as ErrKeyMaterialNotFound.
func (s *KeyFileStore) Load() (*memguard.Enclave, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cryptoDomain.ErrKeyMaterialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	defer cryptoDomain.Zero(data)

	line, _, _ := bytes.Cut(data, []byte{'\n'})
	line = bytes.TrimSpace(line)

	km, err := cryptoDomain.DecodeKeyMaterial(line)
	if err != nil {
		return nil, err
	}
	km.Zero()

	// NewEnclave wipes its source, so seal a copy and let the deferred wipe clear data.
	sealed := make([]byte, len(line))
	copy(sealed, line)
	return memguard.NewEnclave(sealed), nil
}

// Delete removes the key file. Values protected with it can no longer be decrypted.
func (s *KeyFileStore) Delete() error {
	err := os.Remove(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return cryptoDomain.ErrKeyMaterialNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete key file: %w", err)
	}
	return nil
}

// writeTemp writes line to a synced temporary file next to the key file.
func (s *KeyFileStore) writeTemp(line []byte) (string, error) {
	f, err := os.CreateTemp(s.dir, cryptoDomain.KeyFileName+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary key file: %w", err)
	}
	name := f.Name()

	fail := func(step string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to %s temporary key file: %w", step, err)
	}

	if err := f.Chmod(0o600); err != nil {
		return fail("chmod", err)
	}
	if _, err := f.Write(line); err != nil {
		return fail("write", err)
	}
	if _, err := f.Write([]byte{'\n'}); err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to close temporary key file: %w", err)
	}
	return name, nil
}

// removeEmpty deletes a zero-length key file.
func (s *KeyFileStore) removeEmpty() error {
	info, err := os.Stat(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat key file: %w", err)
	}
	if info.Size() != 0 {
		return nil
	}
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove empty key file: %w", err)
	}
	return nil
}
