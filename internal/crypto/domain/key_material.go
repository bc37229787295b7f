package domain

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
)

// KeyMaterial is the random IV and key pair stored in the key file.
//
// The file holds one line, Base64(UTF8(Base64(IV) + "," + Base64(Key))). The line as a
// whole is the password given to PasswordCipher; the IV and key are never used directly.
type KeyMaterial struct {
	IV  [IVSize]byte
	Key [KeySize]byte
}

// GenerateKeyMaterial fills a new KeyMaterial from r (crypto/rand.Reader in production).
func GenerateKeyMaterial(r io.Reader) (*KeyMaterial, error) {
	km := &KeyMaterial{}
	if _, err := io.ReadFull(r, km.IV[:]); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}
	if _, err := io.ReadFull(r, km.Key[:]); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return km, nil
}

// Encode returns the key file line. The caller owns the slice and should wipe it, usually by
// sealing it with memguard.NewEnclave.
func (km *KeyMaterial) Encode() []byte {
	enc := base64.StdEncoding
	inner := make([]byte, enc.EncodedLen(IVSize)+1+enc.EncodedLen(KeySize))
	enc.Encode(inner, km.IV[:])
	inner[enc.EncodedLen(IVSize)] = ','
	enc.Encode(inner[enc.EncodedLen(IVSize)+1:], km.Key[:])
	defer Zero(inner)

	line := make([]byte, enc.EncodedLen(len(inner)))
	enc.Encode(line, inner)
	return line
}

// Zero clears the IV and key.
func (km *KeyMaterial) Zero() {
	Zero(km.IV[:])
	Zero(km.Key[:])
}

// DecodeKeyMaterial parses a key file line produced by Encode.
func DecodeKeyMaterial(line []byte) (*KeyMaterial, error) {
	line = bytes.TrimSpace(line)
	inner := make([]byte, base64.StdEncoding.DecodedLen(len(line)))
	defer Zero(inner)
	n, err := base64.StdEncoding.Decode(inner, line)
	if err != nil || n == 0 {
		return nil, ErrInvalidKeyMaterial
	}
	inner = inner[:n]

	ivPart, keyPart, ok := bytes.Cut(inner, []byte{','})
	if !ok {
		return nil, ErrInvalidKeyMaterial
	}

	km := &KeyMaterial{}
	if !decodeExact(km.IV[:], ivPart) || !decodeExact(km.Key[:], keyPart) {
		km.Zero()
		return nil, ErrInvalidKeyMaterial
	}
	return km, nil
}

// decodeExact decodes src into dst and reports whether it filled dst exactly.
func decodeExact(dst, src []byte) bool {
	if base64.StdEncoding.DecodedLen(len(src)) < len(dst) {
		return false
	}
	buf := make([]byte, base64.StdEncoding.DecodedLen(len(src)))
	defer Zero(buf)

	n, err := base64.StdEncoding.Decode(buf, src)
	if err != nil || n != len(dst) {
		return false
	}
	copy(dst, buf[:n])
	return true
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	memguard.WipeBytes(b)
}
