// Package mocks provides mock implementations for testing settings use cases and handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// MockSettingRepository is a mock implementation of SettingRepository for testing.
type MockSettingRepository struct {
	mock.Mock
}

// Get mocks the Get method of SettingRepository.
func (m *MockSettingRepository) Get(
	ctx context.Context,
	section settingsDomain.Section,
	key string,
) (*settingsDomain.Setting, error) {
	args := m.Called(ctx, section, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsDomain.Setting), args.Error(1)
}

// Set mocks the Set method of SettingRepository.
func (m *MockSettingRepository) Set(ctx context.Context, section settingsDomain.Section, key, value string) error {
	args := m.Called(ctx, section, key, value)
	return args.Error(0)
}

// Create mocks the Create method of SettingRepository.
func (m *MockSettingRepository) Create(
	ctx context.Context,
	section settingsDomain.Section,
	key string,
) (*settingsDomain.Setting, error) {
	args := m.Called(ctx, section, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsDomain.Setting), args.Error(1)
}

// List mocks the List method of SettingRepository.
func (m *MockSettingRepository) List(
	ctx context.Context,
	section settingsDomain.Section,
) ([]*settingsDomain.Setting, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settingsDomain.Setting), args.Error(1)
}

// Save mocks the Save method of SettingRepository.
func (m *MockSettingRepository) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Reload mocks the Reload method of SettingRepository.
func (m *MockSettingRepository) Reload(ctx context.Context, section settingsDomain.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

// MockProtector is a mock implementation of Protector for testing.
type MockProtector struct {
	mock.Mock
}

// Init mocks the Init method of Protector.
func (m *MockProtector) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Protect mocks the Protect method of Protector.
func (m *MockProtector) Protect(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

// Unprotect mocks the Unprotect method of Protector.
func (m *MockProtector) Unprotect(ctx context.Context, ciphertext string) (string, error) {
	args := m.Called(ctx, ciphertext)
	return args.String(0), args.Error(1)
}

// MockSettingStore is a mock implementation of SettingStore for testing.
type MockSettingStore struct {
	mock.Mock
}

// Section mocks the Section method of SettingStore.
func (m *MockSettingStore) Section() settingsDomain.Section {
	args := m.Called()
	return args.Get(0).(settingsDomain.Section)
}

// Read mocks the Read method of SettingStore.
func (m *MockSettingStore) Read(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// Write mocks the Write method of SettingStore.
func (m *MockSettingStore) Write(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Declare mocks the Declare method of SettingStore.
func (m *MockSettingStore) Declare(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// Keys mocks the Keys method of SettingStore.
func (m *MockSettingStore) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
