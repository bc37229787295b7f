package domain

import "context"

// KMSKeeper is the part of *secrets.Keeper used to protect setting values.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
