package domain

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyMaterial(t *testing.T) {
	t.Run("reads iv then key", func(t *testing.T) {
		src := bytes.NewReader(bytes.Repeat([]byte{7}, IVSize+KeySize))

		km, err := GenerateKeyMaterial(src)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{7}, IVSize), km.IV[:])
		assert.Equal(t, bytes.Repeat([]byte{7}, KeySize), km.Key[:])
	})

	t.Run("short reader", func(t *testing.T) {
		_, err := GenerateKeyMaterial(bytes.NewReader(make([]byte, IVSize+4)))
		assert.Error(t, err)
	})
}

func TestKeyMaterial_EncodeDecode(t *testing.T) {
	km, err := GenerateKeyMaterial(rand.Reader)
	require.NoError(t, err)

	line := km.Encode()
	assert.NotContains(t, string(line), "\n")

	inner, err := base64.StdEncoding.DecodeString(string(line))
	require.NoError(t, err)
	parts := strings.Split(string(inner), ",")
	require.Len(t, parts, 2)
	assert.Equal(t, base64.StdEncoding.EncodeToString(km.IV[:]), parts[0])
	assert.Equal(t, base64.StdEncoding.EncodeToString(km.Key[:]), parts[1])

	decoded, err := DecodeKeyMaterial(append(line, '\n'))
	require.NoError(t, err)
	assert.Equal(t, km.IV, decoded.IV)
	assert.Equal(t, km.Key, decoded.Key)
}

func TestDecodeKeyMaterial_Invalid(t *testing.T) {
	encode := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	iv := base64.StdEncoding.EncodeToString(make([]byte, IVSize))
	key := base64.StdEncoding.EncodeToString(make([]byte, KeySize))

	tests := []struct {
		name string
		line string
	}{
		{"not base64", "%%%"},
		{"missing separator", encode(iv + key)},
		{"bad iv", encode("***," + key)},
		{"short iv", encode(base64.StdEncoding.EncodeToString(make([]byte, 4)) + "," + key)},
		{"short key", encode(iv + "," + base64.StdEncoding.EncodeToString(make([]byte, 16)))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeKeyMaterial([]byte(tt.line))
			assert.ErrorIs(t, err, ErrInvalidKeyMaterial)
			assert.ErrorIs(t, err, ErrCrypto)
		})
	}
}

func TestKeyMaterial_Zero(t *testing.T) {
	km, err := GenerateKeyMaterial(bytes.NewReader(bytes.Repeat([]byte{1}, IVSize+KeySize)))
	require.NoError(t, err)

	km.Zero()
	assert.Equal(t, [IVSize]byte{}, km.IV)
	assert.Equal(t, [KeySize]byte{}, km.Key)
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)

	assert.NotPanics(t, func() { Zero(nil) })
}

func TestProtectorKind_IsValid(t *testing.T) {
	assert.True(t, ProtectorKeyFile.IsValid())
	assert.True(t, ProtectorKeeper.IsValid())
	assert.False(t, ProtectorKind("dpapi").IsValid())
}
