package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	settingsUseCase "github.com/allisson/utilkit/internal/settings/usecase"
)

// settingOutput is the JSON shape of get-setting.
type settingOutput struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// RunDeclareSetting creates an empty setting so it can later be written. Declaring an
// existing setting is not an error.
func RunDeclareSetting(
	ctx context.Context,
	stores *settingsUseCase.CryptoConfiguration,
	logger *slog.Logger,
	section, key string,
	io IOTuple,
) error {
	store, err := resolveStore(stores, section)
	if err != nil {
		return err
	}

	created, err := store.Declare(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to declare setting: %w", err)
	}

	if created {
		_, _ = fmt.Fprintf(io.Writer, "Setting %s/%s declared\n", section, key)
		logger.Info("setting declared", slog.String("section", section), slog.String("key", key))
		return nil
	}

	_, _ = fmt.Fprintf(io.Writer, "Setting %s/%s already declared\n", section, key)
	return nil
}

// RunGetSetting prints the decrypted value of a setting in text or JSON format.
func RunGetSetting(
	ctx context.Context,
	stores *settingsUseCase.CryptoConfiguration,
	section, key, format string,
	io IOTuple,
) error {
	store, err := resolveStore(stores, section)
	if err != nil {
		return err
	}

	value, err := store.Read(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read setting: %w", err)
	}

	if format == "json" {
		return outputJSON(settingOutput{Section: section, Key: key, Value: value}, io.Writer)
	}

	_, _ = fmt.Fprintln(io.Writer, value)
	return nil
}

// RunSetSetting encrypts and stores the value of a declared setting. When fromStdin is
// set the value is the first line read from io.Reader, which keeps it out of the shell
// history.
func RunSetSetting(
	ctx context.Context,
	stores *settingsUseCase.CryptoConfiguration,
	logger *slog.Logger,
	section, key, value string,
	fromStdin bool,
	io IOTuple,
) error {
	store, err := resolveStore(stores, section)
	if err != nil {
		return err
	}

	if fromStdin {
		line, err := bufio.NewReader(io.Reader).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read value: %w", err)
		}
		value = strings.TrimRight(line, "\r\n")
	}

	if err := store.Write(ctx, key, value); err != nil {
		return fmt.Errorf("failed to write setting: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Setting %s/%s updated\n", section, key)
	logger.Info("setting updated", slog.String("section", section), slog.String("key", key))
	return nil
}

// RunListSettings prints the declared keys of a section, one per line or as JSON.
func RunListSettings(
	ctx context.Context,
	stores *settingsUseCase.CryptoConfiguration,
	section, format string,
	io IOTuple,
) error {
	store, err := resolveStore(stores, section)
	if err != nil {
		return err
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list settings: %w", err)
	}

	if format == "json" {
		return outputJSON(keys, io.Writer)
	}

	for _, key := range keys {
		_, _ = fmt.Fprintln(io.Writer, key)
	}
	return nil
}
