package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// settingsCORSMaxAge is how long browsers may cache a settings preflight.
const settingsCORSMaxAge = time.Hour

// createCORSMiddleware allows browser access to the settings routes from the configured
// origins. It returns nil when CORS is disabled or when no configured origin is usable;
// a nil middleware leaves cross origin requests without CORS headers.
//
// Only the methods the settings API serves are allowed. Credentials are not allowed
// since authentication uses a bearer token, never cookies.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins, rejected := parseOrigins(allowOriginsStr)
	for _, origin := range rejected {
		logger.Warn("ignoring CORS origin without http(s) scheme", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	}

	config := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        settingsCORSMaxAge,
	}
	if err := config.Validate(); err != nil {
		logger.Warn("invalid CORS configuration, CORS will not be applied", slog.Any("error", err))
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))
	return cors.New(config)
}

// parseOrigins splits a comma separated origin list. Entries are trimmed and a trailing
// slash is dropped; entries that are not "*" and lack an http(s) scheme are returned in
// rejected.
func parseOrigins(originsStr string) (origins, rejected []string) {
	for part := range strings.SplitSeq(originsStr, ",") {
		origin := strings.TrimSuffix(strings.TrimSpace(part), "/")
		switch {
		case origin == "":
		case origin == "*", strings.HasPrefix(origin, "http://"), strings.HasPrefix(origin, "https://"):
			origins = append(origins, origin)
		default:
			rejected = append(rejected, origin)
		}
	}
	return origins, rejected
}
