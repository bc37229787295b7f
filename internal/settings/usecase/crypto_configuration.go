package usecase

import (
	"context"
	"fmt"

	"github.com/allisson/utilkit/internal/metrics"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// CryptoConfiguration groups the protected stores of the application settings sections.
// Both stores share one backend and one protector (and therefore one salt).
type CryptoConfiguration struct {
	AppSettings       SettingStore
	ConnectionStrings SettingStore
}

// NewCryptoConfiguration creates the stores for every section.
func NewCryptoConfiguration(
	ctx context.Context,
	repo SettingRepository,
	protector Protector,
) (*CryptoConfiguration, error) {
	appSettings, err := NewProtectedStore(ctx, settingsDomain.SectionAppSettings, repo, protector)
	if err != nil {
		return nil, err
	}

	connectionStrings, err := NewProtectedStore(ctx, settingsDomain.SectionConnectionStrings, repo, protector)
	if err != nil {
		return nil, err
	}

	return &CryptoConfiguration{
		AppSettings:       appSettings,
		ConnectionStrings: connectionStrings,
	}, nil
}

// WithMetrics returns a copy whose stores record business metrics.
func (c *CryptoConfiguration) WithMetrics(m metrics.BusinessMetrics) *CryptoConfiguration {
	return &CryptoConfiguration{
		AppSettings:       NewSettingStoreWithMetrics(c.AppSettings, m),
		ConnectionStrings: NewSettingStoreWithMetrics(c.ConnectionStrings, m),
	}
}

// Store returns the store bound to section.
func (c *CryptoConfiguration) Store(section settingsDomain.Section) (SettingStore, error) {
	switch section {
	case settingsDomain.SectionAppSettings:
		return c.AppSettings, nil
	case settingsDomain.SectionConnectionStrings:
		return c.ConnectionStrings, nil
	default:
		return nil, fmt.Errorf("%w: %q", settingsDomain.ErrInvalidSection, section)
	}
}
