package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// unmatchedRoute labels every request no route matched, keeping one series for all
// unknown paths.
const unmatchedRoute = "unmatched"

// HTTPMetricsMiddleware records <namespace>_http_requests_total and
// <namespace>_http_request_duration_seconds. Requests are labeled with method, route
// pattern, status_class and, for settings routes naming a known section, section.
// Liveness and readiness checks are not recorded.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeLabel(c.FullPath())
		if route == "/health" || route == "/ready" {
			return
		}

		attrs := []attribute.KeyValue{
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
			attribute.String("status_class", statusClass(c.Writer.Status())),
		}
		if section := settingsDomain.Section(c.Param("section")); section.IsValid() {
			attrs = append(attrs, attribute.String("section", section.String()))
		}

		ctx := c.Request.Context()
		requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
		durationHisto.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	}
}

// routeLabel returns the gin route pattern, or unmatchedRoute when no route matched.
func routeLabel(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}

// statusClass collapses a status code into 1xx..5xx.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
