package domain

import (
	"github.com/allisson/utilkit/internal/errors"
)

// Settings error definitions.
var (
	// ErrSettingNotFound indicates no entry exists for the section and key.
	ErrSettingNotFound = errors.Wrap(errors.ErrNotFound, "setting not found")

	// ErrSettingAlreadyExists indicates the entry is already declared.
	ErrSettingAlreadyExists = errors.Wrap(errors.ErrConflict, "setting already exists")

	// ErrPersistFailed indicates the backend could not save or reload its entries.
	ErrPersistFailed = errors.Wrap(errors.ErrConfiguration, "failed to persist settings")

	// ErrInvalidSection indicates an unknown section name.
	ErrInvalidSection = errors.Wrap(errors.ErrInvalidInput, "invalid section")
)
