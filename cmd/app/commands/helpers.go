// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/utilkit/internal/app"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
	settingsUseCase "github.com/allisson/utilkit/internal/settings/usecase"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// outputJSON writes v as indented JSON.
func outputJSON(v any, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, _ = fmt.Fprintln(writer, string(data))
	return nil
}

// resolveStore parses a section name and returns its protected store.
func resolveStore(
	stores *settingsUseCase.CryptoConfiguration,
	section string,
) (settingsUseCase.SettingStore, error) {
	s := settingsDomain.Section(section)
	if !s.IsValid() {
		return nil, fmt.Errorf(
			"invalid section: %s (valid options: %s, %s)",
			section,
			settingsDomain.SectionAppSettings,
			settingsDomain.SectionConnectionStrings,
		)
	}
	return stores.Store(s)
}
