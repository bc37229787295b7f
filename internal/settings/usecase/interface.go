// Package usecase defines the interfaces and implementations for protected settings.
// A store reads and writes the settings of one section, encrypting values on the way
// to its backend and decrypting them on the way out.
package usecase

import (
	"context"

	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// SettingRepository defines the interface for settings backends.
type SettingRepository interface {
	Get(ctx context.Context, section settingsDomain.Section, key string) (*settingsDomain.Setting, error)
	Set(ctx context.Context, section settingsDomain.Section, key, value string) error
	Create(ctx context.Context, section settingsDomain.Section, key string) (*settingsDomain.Setting, error)
	List(ctx context.Context, section settingsDomain.Section) ([]*settingsDomain.Setting, error)
	Save(ctx context.Context) error
	Reload(ctx context.Context, section settingsDomain.Section) error
}

// Protector turns setting values into their at-rest form and back.
type Protector interface {
	Init(ctx context.Context) error
	Protect(ctx context.Context, plaintext string) (string, error)
	Unprotect(ctx context.Context, ciphertext string) (string, error)
}

// SettingStore defines the protected key/value operations over one section.
type SettingStore interface {
	// Section returns the section the store is bound to.
	Section() settingsDomain.Section

	// Read returns the plaintext value of key. A declared entry without a value reads as "";
	// an undeclared key fails with ErrSettingNotFound.
	Read(ctx context.Context, key string) (string, error)

	// Write encrypts and persists value for an existing key. An empty value is stored
	// unencrypted and reads back as "".
	Write(ctx context.Context, key, value string) error

	// Declare creates an empty entry for key, reporting false when it already existed.
	Declare(ctx context.Context, key string) (bool, error)

	// Keys returns the declared keys in order.
	Keys(ctx context.Context) ([]string, error)
}
