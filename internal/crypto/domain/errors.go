package domain

import (
	"github.com/allisson/utilkit/internal/errors"
)

// Cryptographic operation error definitions.
//
// All of them match ErrCrypto with errors.Is, and ErrCrypto matches errors.ErrInvalidInput
// so HTTP handlers report them as 422 Unprocessable Entity.
var (
	// ErrCrypto is the root of every cipher, key derivation and key material failure.
	ErrCrypto = errors.Wrap(errors.ErrInvalidInput, "crypto error")

	// ErrDecryptionFailed indicates the ciphertext could not be decrypted with the derived
	// key (wrong password or salt, tampered or truncated data, bad padding).
	ErrDecryptionFailed = errors.Wrap(ErrCrypto, "decryption failed")

	// ErrInvalidCiphertext indicates the ciphertext is not valid Base64.
	ErrInvalidCiphertext = errors.Wrap(ErrCrypto, "invalid ciphertext")

	// ErrInvalidSalt indicates the salt is not valid Base64 or is shorter than MinSaltSize.
	ErrInvalidSalt = errors.Wrap(ErrCrypto, "invalid salt")

	// ErrEmptyPassword indicates an empty cipher password.
	ErrEmptyPassword = errors.Wrap(ErrCrypto, "empty password")

	// ErrInvalidKeyMaterial indicates the key file content cannot be decoded.
	ErrInvalidKeyMaterial = errors.Wrap(ErrCrypto, "invalid key material")

	// ErrKeyMaterialNotFound indicates the key file does not exist.
	ErrKeyMaterialNotFound = errors.Wrap(errors.ErrNotFound, "key material not found")

	// ErrKeyMaterialChanged indicates the key file no longer holds the key a protector was
	// initialized with.
	ErrKeyMaterialChanged = errors.Wrap(ErrCrypto, "key material changed since initialization")

	// ErrProtectorNotReady indicates Protect or Unprotect was called before Init.
	ErrProtectorNotReady = errors.Wrap(ErrCrypto, "protector not initialized")

	// ErrUnsupportedProtector indicates an unknown ProtectorKind.
	ErrUnsupportedProtector = errors.Wrap(errors.ErrInvalidInput, "unsupported protector")
)
