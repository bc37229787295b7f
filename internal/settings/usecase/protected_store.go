package usecase

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/utilkit/internal/errors"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
	customValidation "github.com/allisson/utilkit/internal/validation"
)

// ProtectedStore implements SettingStore on top of a SettingRepository and a Protector.
//
// A write is Protect, Set, Save and Reload in sequence. The sequence is not atomic across
// writers: concurrent writers to the same backend follow last-writer-wins.
type ProtectedStore struct {
	section   settingsDomain.Section
	repo      SettingRepository
	protector Protector
}

// NewProtectedStore creates a store for section and initializes the protector key
// material. The store is not returned when initialization fails.
func NewProtectedStore(
	ctx context.Context,
	section settingsDomain.Section,
	repo SettingRepository,
	protector Protector,
) (*ProtectedStore, error) {
	if !section.IsValid() {
		return nil, fmt.Errorf("%w: %q", settingsDomain.ErrInvalidSection, section)
	}

	if err := protector.Init(ctx); err != nil {
		return nil, apperrors.Wrap(err, "failed to initialize key material")
	}

	return &ProtectedStore{
		section:   section,
		repo:      repo,
		protector: protector,
	}, nil
}

// Section returns the section the store is bound to.
func (s *ProtectedStore) Section() settingsDomain.Section {
	return s.section
}

// Read returns the decrypted value of key, "" for a declared but empty entry and
// ErrSettingNotFound for an undeclared key.
func (s *ProtectedStore) Read(ctx context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	setting, err := s.repo.Get(ctx, s.section, key)
	if err != nil {
		return "", err
	}

	if setting.IsEmpty() {
		return "", nil
	}

	return s.protector.Unprotect(ctx, setting.Value)
}

// Write encrypts value and persists it under key, then reloads the section so the next
// Read observes what the backend holds.
func (s *ProtectedStore) Write(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	stored := value
	if value != "" {
		protected, err := s.protector.Protect(ctx, value)
		if err != nil {
			return err
		}
		stored = protected
	}

	if err := s.repo.Set(ctx, s.section, key, stored); err != nil {
		if errors.Is(err, settingsDomain.ErrSettingNotFound) {
			return fmt.Errorf("%w: %w", apperrors.ErrConfiguration, err)
		}
		return err
	}

	return s.persist(ctx)
}

// Declare creates an empty entry for key when it does not exist yet.
func (s *ProtectedStore) Declare(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	if _, err := s.repo.Create(ctx, s.section, key); err != nil {
		if errors.Is(err, settingsDomain.ErrSettingAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	if err := s.persist(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Keys returns the declared keys of the section ordered by key.
func (s *ProtectedStore) Keys(ctx context.Context) ([]string, error) {
	settings, err := s.repo.List(ctx, s.section)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(settings))
	for _, setting := range settings {
		keys = append(keys, setting.Key)
	}
	return keys, nil
}

// persist saves staged changes and refreshes the section. A failed save also reloads the
// section so unsaved values are not served by later reads.
func (s *ProtectedStore) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx); err != nil {
		_ = s.repo.Reload(ctx, s.section)
		return fmt.Errorf("%w: %w", settingsDomain.ErrPersistFailed, err)
	}

	if err := s.repo.Reload(ctx, s.section); err != nil {
		return fmt.Errorf("%w: %w", settingsDomain.ErrPersistFailed, err)
	}
	return nil
}

func validateKey(key string) error {
	return customValidation.WrapValidationError(validation.Validate(key, customValidation.SettingKeyRules...))
}
