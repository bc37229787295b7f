package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/utilkit/internal/crypto/domain"
	cryptoService "github.com/allisson/utilkit/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// Protector returns the initialized value protector selected by SETTINGS_PROTECTOR.
// The first call creates key material when the key file protector has none yet.
func (c *Container) Protector(ctx context.Context) (cryptoService.Protector, error) {
	var err error
	c.protectorInit.Do(func() {
		c.protector, err = c.initProtector(ctx)
		if err != nil {
			c.initErrors["protector"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["protector"]; exists {
		return nil, storedErr
	}
	return c.protector, nil
}

// KeyDir returns KEY_FILE_DIR, or the per-user default directory derived from APP_ID.
func (c *Container) KeyDir() (string, error) {
	if c.config.KeyFileDir != "" {
		return c.config.KeyFileDir, nil
	}
	return cryptoService.DefaultKeyDir(c.config.AppID)
}

// KeyFileStore returns the key file store inside KeyDir.
func (c *Container) KeyFileStore() (*cryptoService.KeyFileStore, error) {
	dir, err := c.KeyDir()
	if err != nil {
		return nil, err
	}
	return cryptoService.NewKeyFileStore(dir), nil
}

func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

func (c *Container) initProtector(ctx context.Context) (cryptoService.Protector, error) {
	cfg := cryptoService.ProtectorConfig{
		Kind:      cryptoDomain.ProtectorKind(c.config.SettingsProtector),
		Salt:      c.config.SettingsSalt,
		KeeperURI: c.config.SettingsKeeperURI,
	}

	if cfg.Kind != cryptoDomain.ProtectorKeeper {
		dir, err := c.KeyDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve key file directory: %w", err)
		}
		cfg.KeyDir = dir
	}

	protector, err := cryptoService.NewProtector(cfg, c.KMSService())
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for protector: %w", err)
	}
	protector = cryptoService.NewProtectorWithMetrics(protector, businessMetrics)

	if err := protector.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize protector: %w", err)
	}

	c.Logger().Debug("protector initialized", slog.String("kind", c.config.SettingsProtector))
	return protector, nil
}
