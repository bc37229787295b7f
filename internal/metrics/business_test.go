package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/utilkit/internal/errors"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestErrorReason(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "not found", err: apperrors.Wrap(apperrors.ErrNotFound, "setting"), expected: "not_found"},
		{name: "invalid input", err: apperrors.ErrInvalidInput, expected: "invalid_input"},
		{name: "configuration", err: apperrors.Wrap(apperrors.ErrConfiguration, "save"), expected: "configuration_error"},
		{name: "unauthorized", err: apperrors.ErrUnauthorized, expected: "unauthorized"},
		{name: "unclassified", err: errors.New("disk on fire"), expected: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorReason(tt.err))
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusError, StatusOf(assert.AnError))
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)
	assert.NotPanics(t, func() {
		noOpMetrics.Observe(context.Background(), DomainCrypto, OpProtect, time.Millisecond, nil)
		noOpMetrics.Observe(context.Background(), DomainSettings, OpSettingWrite, time.Millisecond, assert.AnError)
	})
}

func TestBusinessMetrics_Observe(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()
	notFound := apperrors.Wrap(apperrors.ErrNotFound, "setting not found")

	bm.Observe(ctx, DomainCrypto, OpProtect, 50*time.Millisecond, nil)
	bm.Observe(ctx, DomainCrypto, OpProtect, 60*time.Millisecond, nil)
	bm.Observe(ctx, DomainCrypto, OpProtect, 100*time.Millisecond, errors.New("boom"))
	bm.Observe(ctx, DomainSettings, OpSettingWrite, 10*time.Millisecond, nil)
	bm.Observe(ctx, DomainSettings, OpSettingRead, 20*time.Millisecond, notFound)
	bm.Observe(ctx, DomainSettings, OpSettingRead, 20*time.Millisecond, notFound)

	output := scrape(t, provider)

	t.Run("counts by outcome", func(t *testing.T) {
		assertBizMetricLine(t, output, `integration_test_operations_total`,
			`domain="crypto".*operation="protect".*status="success"`, `2`)
		assertBizMetricLine(t, output, `integration_test_operations_total`,
			`domain="crypto".*operation="protect".*reason="internal_error".*status="error"`, `1`)
		assertBizMetricLine(t, output, `integration_test_operations_total`,
			`domain="settings".*operation="setting_write".*status="success"`, `1`)
	})

	t.Run("labels failures with reason", func(t *testing.T) {
		assertBizMetricLine(t, output, `integration_test_operations_total`,
			`domain="settings".*operation="setting_read".*reason="not_found".*status="error"`, `2`)
	})

	t.Run("histogram omits reason", func(t *testing.T) {
		assertBizMetricLine(t, output, `integration_test_operation_duration_seconds_count`,
			`domain="crypto".*operation="protect".*status="success"`, `2`)
		assertBizMetricLine(t, output, `integration_test_operation_duration_seconds_count`,
			`domain="settings".*operation="setting_read".*status="error"`, `2`)
		assert.NotRegexp(t, `integration_test_operation_duration_seconds_count\{[^}]*reason=`, output)
	})
}
