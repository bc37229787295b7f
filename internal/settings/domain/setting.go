// Package domain defines the settings model: protected key/value entries grouped in
// sections, stored encrypted at rest by a settings backend.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Section groups settings the way application configuration files do.
type Section string

const (
	// SectionAppSettings holds general application settings.
	SectionAppSettings Section = "appSettings"
	// SectionConnectionStrings holds database and service connection strings.
	SectionConnectionStrings Section = "connectionStrings"
)

// Sections returns every known section in a stable order.
func Sections() []Section {
	return []Section{SectionAppSettings, SectionConnectionStrings}
}

// IsValid reports whether s is a known section.
func (s Section) IsValid() bool {
	return s == SectionAppSettings || s == SectionConnectionStrings
}

func (s Section) String() string {
	return string(s)
}

// Setting is one persisted entry. Value holds the protected (encrypted) form; an empty
// Value means the entry is declared but unset and is never decrypted.
type Setting struct {
	// ID identifies the entry in database backends (uuid.Nil for file backends).
	ID uuid.UUID
	// Section is the group the entry belongs to.
	Section Section
	// Key is the entry name, unique within its section.
	Key string
	// Value is the Base64 ciphertext, or "" when unset.
	Value string
	// CreatedAt is the UTC timestamp when the entry was declared.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last write.
	UpdatedAt time.Time
}

// IsEmpty reports whether the entry holds no value.
func (s *Setting) IsEmpty() bool {
	return s.Value == ""
}
