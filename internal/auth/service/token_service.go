package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"sync"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/utilkit/internal/errors"
)

// tokenService implements TokenService using Argon2id for token hashing.
//
// Argon2id verification is deliberately slow, so the SHA-256 digest of the last
// verified token is remembered and later requests carrying the same token are
// compared against it in constant time.
type tokenService struct {
	hasher *pwdhash.PasswordHasher

	mu           sync.RWMutex
	verifiedHash string
	verifiedSum  [sha256.Size]byte
}

// NewTokenService creates a new TokenService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewTokenService() TokenService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &tokenService{
		hasher: hasher,
	}
}

// GenerateToken creates a new cryptographically secure 32-byte random token.
// The token is base64 URL-encoded for easy transmission in an Authorization header.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = base64.URLEncoding.EncodeToString(randomBytes)

	tokenHash, err = t.HashToken(plainToken)
	if err != nil {
		return "", "", err
	}

	return plainToken, tokenHash, nil
}

// HashToken hashes a plain text token using Argon2id.
func (t *tokenService) HashToken(plainToken string) (string, error) {
	hashed, err := t.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash token")
	}
	return hashed, nil
}

// VerifyToken performs a constant-time comparison between a plain token and its hash.
func (t *tokenService) VerifyToken(plainToken, tokenHash string) bool {
	if plainToken == "" || tokenHash == "" {
		return false
	}

	sum := sha256.Sum256([]byte(plainToken))

	t.mu.RLock()
	cached := t.verifiedHash == tokenHash && subtle.ConstantTimeCompare(sum[:], t.verifiedSum[:]) == 1
	t.mu.RUnlock()
	if cached {
		return true
	}

	ok, err := t.hasher.Verify([]byte(plainToken), tokenHash)
	if err != nil || !ok {
		return false
	}

	t.mu.Lock()
	t.verifiedHash = tokenHash
	t.verifiedSum = sum
	t.mu.Unlock()
	return true
}
