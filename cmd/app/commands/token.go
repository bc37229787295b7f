package commands

import (
	"fmt"

	authService "github.com/allisson/utilkit/internal/auth/service"
)

// tokenOutput is the JSON shape of hash-token.
type tokenOutput struct {
	Token string `json:"token,omitempty"`
	Hash  string `json:"hash"`
}

// RunHashToken prints the Argon2id hash of an API bearer token for API_TOKEN_HASH. When
// plainToken is empty a new random token is generated and printed alongside its hash.
func RunHashToken(tokenService authService.TokenService, plainToken, format string, io IOTuple) error {
	output := tokenOutput{}

	if plainToken == "" {
		token, hash, err := tokenService.GenerateToken()
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
		output.Token = token
		output.Hash = hash
	} else {
		hash, err := tokenService.HashToken(plainToken)
		if err != nil {
			return fmt.Errorf("failed to hash token: %w", err)
		}
		output.Hash = hash
	}

	if format == "json" {
		return outputJSON(output, io.Writer)
	}

	if output.Token != "" {
		_, _ = fmt.Fprintf(io.Writer, "Token: %s\n", output.Token)
		_, _ = fmt.Fprintln(io.Writer, "IMPORTANT: The token is shown only once. Store it securely.")
	}
	_, _ = fmt.Fprintf(io.Writer, "API_TOKEN_HASH='%s'\n", output.Hash)
	return nil
}
