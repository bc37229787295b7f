package app

import (
	"context"
	"fmt"

	"github.com/allisson/utilkit/internal/config"
	"github.com/allisson/utilkit/internal/database"
	settingsHTTP "github.com/allisson/utilkit/internal/settings/http"
	settingsRepository "github.com/allisson/utilkit/internal/settings/repository"
	settingsUseCase "github.com/allisson/utilkit/internal/settings/usecase"
)

// SettingRepository returns the settings backend selected by SETTINGS_BACKEND and, for the
// database backend, DB_DRIVER.
func (c *Container) SettingRepository() (settingsUseCase.SettingRepository, error) {
	var err error
	c.settingRepositoryInit.Do(func() {
		c.settingRepository, err = c.initSettingRepository()
		if err != nil {
			c.initErrors["settingRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingRepository"]; exists {
		return nil, storedErr
	}
	return c.settingRepository, nil
}

// CryptoConfiguration returns the protected stores of every section, instrumented with
// business metrics.
func (c *Container) CryptoConfiguration(ctx context.Context) (*settingsUseCase.CryptoConfiguration, error) {
	var err error
	c.cryptoConfigurationInit.Do(func() {
		c.cryptoConfiguration, err = c.initCryptoConfiguration(ctx)
		if err != nil {
			c.initErrors["cryptoConfiguration"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cryptoConfiguration"]; exists {
		return nil, storedErr
	}
	return c.cryptoConfiguration, nil
}

// SettingHandler returns the HTTP handler for protected settings.
func (c *Container) SettingHandler() (*settingsHTTP.SettingHandler, error) {
	var err error
	c.settingHandlerInit.Do(func() {
		c.settingHandler, err = c.initSettingHandler()
		if err != nil {
			c.initErrors["settingHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingHandler"]; exists {
		return nil, storedErr
	}
	return c.settingHandler, nil
}

// initSettingRepository creates the settings backend.
func (c *Container) initSettingRepository() (settingsUseCase.SettingRepository, error) {
	switch c.config.SettingsBackend {
	case config.SettingsBackendFile, "":
		return settingsRepository.NewFileSettingRepository(c.config.SettingsFile), nil
	case config.SettingsBackendDatabase:
	default:
		return nil, fmt.Errorf("unsupported settings backend: %s", c.config.SettingsBackend)
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for setting repository: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for setting repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case database.DriverMySQL:
		return settingsRepository.NewMySQLSettingRepository(db, txManager), nil
	case database.DriverPostgres:
		return settingsRepository.NewPostgreSQLSettingRepository(db, txManager), nil
	case database.DriverSQLite:
		return settingsRepository.NewSQLiteSettingRepository(db, txManager), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCryptoConfiguration opens both sections with the shared protector.
func (c *Container) initCryptoConfiguration(ctx context.Context) (*settingsUseCase.CryptoConfiguration, error) {
	repo, err := c.SettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting repository for crypto configuration: %w", err)
	}

	protector, err := c.Protector(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get protector for crypto configuration: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for crypto configuration: %w", err)
	}

	cryptoConfiguration, err := settingsUseCase.NewCryptoConfiguration(ctx, repo, protector)
	if err != nil {
		return nil, err
	}

	return cryptoConfiguration.WithMetrics(businessMetrics), nil
}

// initSettingHandler creates the setting handler.
func (c *Container) initSettingHandler() (*settingsHTTP.SettingHandler, error) {
	cryptoConfiguration, err := c.CryptoConfiguration(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get crypto configuration for setting handler: %w", err)
	}

	return settingsHTTP.NewSettingHandler(cryptoConfiguration, c.Logger()), nil
}
