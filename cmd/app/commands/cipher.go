package commands

import (
	"fmt"

	cryptoService "github.com/allisson/utilkit/internal/crypto/service"
)

// RunEncrypt encrypts text with a password and Base64 salt and prints the Base64 ciphertext.
func RunEncrypt(cipher *cryptoService.PasswordCipher, text, password, salt string, io IOTuple) error {
	ciphertext, err := cipher.Encrypt(text, password, salt)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}
	_, _ = fmt.Fprintln(io.Writer, ciphertext)
	return nil
}

// RunDecrypt decrypts a Base64 ciphertext produced by RunEncrypt and prints the plaintext.
func RunDecrypt(cipher *cryptoService.PasswordCipher, ciphertext, password, salt string, io IOTuple) error {
	plaintext, err := cipher.Decrypt(ciphertext, password, salt)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}
	_, _ = fmt.Fprintln(io.Writer, plaintext)
	return nil
}
