package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) (string, error) {
	args := m.Called(plainToken)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) VerifyToken(plainToken, tokenHash string) bool {
	args := m.Called(plainToken, tokenHash)
	return args.Bool(0)
}

func TestRunHashToken(t *testing.T) {
	t.Run("hash-given-token", func(t *testing.T) {
		tokenService := &mockTokenService{}
		tokenService.On("HashToken", "my-token").Return("$argon2id$hash", nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunHashToken(tokenService, "my-token", "text", IOTuple{Writer: &out}))
		assert.Equal(t, "API_TOKEN_HASH='$argon2id$hash'\n", out.String())
		tokenService.AssertExpectations(t)
	})

	t.Run("generate-token-json", func(t *testing.T) {
		tokenService := &mockTokenService{}
		tokenService.On("GenerateToken").Return("generated", "$argon2id$hash", nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunHashToken(tokenService, "", "json", IOTuple{Writer: &out}))

		var result tokenOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, tokenOutput{Token: "generated", Hash: "$argon2id$hash"}, result)
		tokenService.AssertExpectations(t)
	})

	t.Run("generate-token-text", func(t *testing.T) {
		tokenService := &mockTokenService{}
		tokenService.On("GenerateToken").Return("generated", "$argon2id$hash", nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunHashToken(tokenService, "", "text", IOTuple{Writer: &out}))
		assert.Contains(t, out.String(), "Token: generated")
		assert.Contains(t, out.String(), "shown only once")
	})

	t.Run("hash-error", func(t *testing.T) {
		tokenService := &mockTokenService{}
		tokenService.On("HashToken", "my-token").Return("", errors.New("boom")).Once()

		err := RunHashToken(tokenService, "my-token", "text", IOTuple{Writer: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to hash token")
	})
}
