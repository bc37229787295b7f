package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/utilkit/internal/crypto/domain"
)

// utf8BOM is written by some producers of this ciphertext format ahead of the plaintext.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PasswordCipher encrypts text with a key derived from a password and salt.
//
// The key schedule is PBKDF2-HMAC-SHA1 with 1000 iterations over the password and the
// Base64-decoded salt. The first 32 derived bytes are the AES-256 key and the next 16 bytes
// are the CBC initialisation vector, so a given (password, salt) pair always yields the same
// key and IV. Plaintext is UTF-8 text padded with PKCS#7 and the ciphertext is standard
// Base64.
//
// Decrypt drops a leading UTF-8 byte order mark, which some producers of this format write
// ahead of the plaintext. Encrypt never writes one, so for the same plaintext, password and
// salt its output differs from such a producer's ciphertext. Readers that detect the mark
// rather than require it decrypt both forms to the same text.
//
// Because the IV is derived rather than random, equal plaintexts produce equal ciphertexts
// under the same password and salt, and CBC provides no integrity protection. The cipher
// obfuscates values at rest and is not meant for high-assurance secrets.
//
// Thread safety:
//
//	PasswordCipher holds no mutable state and is safe for concurrent use.
//
// Example usage:
//
//	c := NewPasswordCipher()
//	salt, _ := GenerateSalt()
//	ciphertext, err := c.Encrypt("This is some data of any length.", "password", salt)
//	if err != nil {
//	    return err
//	}
//	plaintext, err := c.Decrypt(ciphertext, "password", salt)
type PasswordCipher struct {
	iterations int
}

// NewPasswordCipher creates a PasswordCipher with the standard iteration count.
func NewPasswordCipher() *PasswordCipher {
	return &PasswordCipher{iterations: cryptoDomain.KDFIterations}
}

// Encrypt encrypts plaintext with the key and IV derived from password and saltBase64.
//
// Parameters:
//   - plaintext: The text to encrypt (can be empty)
//   - password: The password; must not be empty
//   - saltBase64: Standard Base64 encoding of at least 8 salt bytes
//
// Returns:
//   - The Base64 ciphertext
//   - ErrEmptyPassword or ErrInvalidSalt for bad parameters
func (c *PasswordCipher) Encrypt(plaintext, password, saltBase64 string) (string, error) {
	return c.encrypt(plaintext, []byte(password), saltBase64)
}

// encrypt is Encrypt with the password as bytes, so it can stay in locked memory.
func (c *PasswordCipher) encrypt(plaintext string, password []byte, saltBase64 string) (string, error) {
	block, iv, err := c.derive(password, saltBase64)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	defer cryptoDomain.Zero(padded)

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt.
//
// Parameters:
//   - ciphertext: Base64 ciphertext produced by Encrypt with the same password and salt
//   - password: The password used for encryption
//   - saltBase64: The salt used for encryption
//
// Returns:
//   - The plaintext
//   - ErrInvalidCiphertext when ciphertext is not Base64
//   - ErrDecryptionFailed when the length or padding is wrong, which is what a wrong
//     password or salt usually produces
func (c *PasswordCipher) Decrypt(ciphertext, password, saltBase64 string) (string, error) {
	return c.decrypt(ciphertext, []byte(password), saltBase64)
}

func (c *PasswordCipher) decrypt(ciphertext string, password []byte, saltBase64 string) (string, error) {
	block, iv, err := c.derive(password, saltBase64)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", cryptoDomain.ErrInvalidCiphertext
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", cryptoDomain.ErrDecryptionFailed, len(raw))
	}

	cipher.NewCBCDecrypter(block, iv).CryptBlocks(raw, raw)
	defer cryptoDomain.Zero(raw)

	plain, err := pkcs7Unpad(raw, aes.BlockSize)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimPrefix(plain, utf8BOM)), nil
}

func (c *PasswordCipher) derive(password []byte, saltBase64 string) (cipher.Block, []byte, error) {
	if len(password) == 0 {
		return nil, nil, cryptoDomain.ErrEmptyPassword
	}

	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: salt is not valid base64", cryptoDomain.ErrInvalidSalt)
	}
	if len(salt) < cryptoDomain.MinSaltSize {
		return nil, nil, fmt.Errorf("%w: salt must be at least %d bytes", cryptoDomain.ErrInvalidSalt, cryptoDomain.MinSaltSize)
	}

	derived := pbkdf2.Key(password, salt, c.iterations, cryptoDomain.KeySize+cryptoDomain.IVSize, sha1.New)
	defer cryptoDomain.Zero(derived)

	block, err := aes.NewCipher(derived[:cryptoDomain.KeySize])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	iv := make([]byte, cryptoDomain.IVSize)
	copy(iv, derived[cryptoDomain.KeySize:])

	return block, iv, nil
}

// GenerateSalt returns 16 random bytes in standard Base64, suitable for SETTINGS_SALT.
func GenerateSalt() (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", cryptoDomain.ErrDecryptionFailed)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", cryptoDomain.ErrDecryptionFailed)
		}
	}
	out := make([]byte, len(data)-n)
	copy(out, data[:len(data)-n])
	return out, nil
}
