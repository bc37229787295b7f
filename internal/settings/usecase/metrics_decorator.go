package usecase

import (
	"context"
	"time"

	"github.com/allisson/utilkit/internal/metrics"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// settingStoreWithMetrics decorates SettingStore with metrics instrumentation.
type settingStoreWithMetrics struct {
	next    SettingStore
	metrics metrics.BusinessMetrics
}

// NewSettingStoreWithMetrics wraps a SettingStore with metrics recording.
func NewSettingStoreWithMetrics(store SettingStore, m metrics.BusinessMetrics) SettingStore {
	return &settingStoreWithMetrics{
		next:    store,
		metrics: m,
	}
}

func (s *settingStoreWithMetrics) Section() settingsDomain.Section {
	return s.next.Section()
}

// Read records metrics for setting reads.
func (s *settingStoreWithMetrics) Read(ctx context.Context, key string) (string, error) {
	start := time.Now()
	value, err := s.next.Read(ctx, key)
	s.record(ctx, metrics.OpSettingRead, start, err)
	return value, err
}

// Write records metrics for setting writes.
func (s *settingStoreWithMetrics) Write(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Write(ctx, key, value)
	s.record(ctx, metrics.OpSettingWrite, start, err)
	return err
}

// Declare records metrics for setting declarations.
func (s *settingStoreWithMetrics) Declare(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	created, err := s.next.Declare(ctx, key)
	s.record(ctx, metrics.OpSettingDeclare, start, err)
	return created, err
}

// Keys records metrics for key listings.
func (s *settingStoreWithMetrics) Keys(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := s.next.Keys(ctx)
	s.record(ctx, metrics.OpSettingKeys, start, err)
	return keys, err
}

func (s *settingStoreWithMetrics) record(
	ctx context.Context,
	operation metrics.Operation,
	start time.Time,
	err error,
) {
	s.metrics.Observe(ctx, metrics.DomainSettings, operation, time.Since(start), err)
}
