package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"
)

// SaltBase64 validates a standard Base64 salt that decodes to at least minBytes bytes.
// Empty strings pass so Required decides whether the salt is mandatory.
func SaltBase64(minBytes int) validation.Rule {
	return validation.By(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_salt_type", "must be a string")
		}
		if s == "" {
			return nil
		}
		salt, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return validation.NewError("validation_salt_base64", "must be valid base64-encoded data")
		}
		if len(salt) < minBytes {
			return validation.NewError("validation_salt_length", "must decode to at least {{.min}} bytes").
				SetParams(map[string]any{"min": minBytes})
		}
		return nil
	})
}
