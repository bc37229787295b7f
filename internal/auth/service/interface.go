// Package service provides API token generation and verification.
//
// The API is protected by one static bearer token. Only its Argon2id hash is
// configured (API_TOKEN_HASH), so the plain token never has to be stored on the server.
package service

// TokenService defines operations for API token generation and verification.
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token and its
	// Argon2id hash. The plain token is shown once and never stored.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token using Argon2id in PHC string format.
	HashToken(plainToken string) (string, error)

	// VerifyToken reports whether plainToken matches tokenHash.
	VerifyToken(plainToken, tokenHash string) bool
}
