package commands

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	cryptoService "github.com/allisson/utilkit/internal/crypto/service"
)

// RunCreateKey creates the key file used by the key file protector when it does not exist.
// Existing key material is never replaced.
func RunCreateKey(store *cryptoService.KeyFileStore, logger *slog.Logger, io IOTuple) error {
	_, created, err := store.EnsureKey()
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}

	if created {
		_, _ = fmt.Fprintf(io.Writer, "Key file created at %s\n", store.Path())
		logger.Info("key file created", slog.String("path", store.Path()))
		return nil
	}

	_, _ = fmt.Fprintf(io.Writer, "Key file already exists at %s\n", store.Path())
	return nil
}

// RunDeleteKey removes the key file. Values protected with it become unreadable, so the
// user must confirm unless force is set.
func RunDeleteKey(store *cryptoService.KeyFileStore, logger *slog.Logger, force bool, io IOTuple) error {
	if !force {
		_, _ = fmt.Fprintf(
			io.Writer,
			"Deleting %s makes every protected setting unreadable. Continue? (y/n): ",
			store.Path(),
		)
		answer, err := bufio.NewReader(io.Reader).ReadString('\n')
		if err != nil && answer == "" {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			_, _ = fmt.Fprintln(io.Writer, "Aborted.")
			return nil
		}
	}

	if err := store.Delete(); err != nil {
		return fmt.Errorf("failed to delete key file: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Key file deleted: %s\n", store.Path())
	logger.Warn("key file deleted", slog.String("path", store.Path()))
	return nil
}

// RunGenerateSalt prints a new random salt in the form expected by SETTINGS_SALT.
func RunGenerateSalt(io IOTuple) error {
	salt, err := cryptoService.GenerateSalt()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(io.Writer, "SETTINGS_SALT=\"%s\"\n", salt)
	return nil
}
