// Package http provides HTTP middleware for API authentication and rate limiting.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/utilkit/internal/auth/service"
	apperrors "github.com/allisson/utilkit/internal/errors"
	"github.com/allisson/utilkit/internal/httputil"
)

// AuthenticationMiddleware requires a Bearer token in the Authorization header that
// matches the configured Argon2id token hash.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Token not matching tokenHash → 401 Unauthorized
//
// Usage:
//
//	v1 := router.Group("/v1")
//	v1.Use(AuthenticationMiddleware(cfg.APITokenHash, tokenService, logger))
func AuthenticationMiddleware(
	tokenHash string,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !tokenService.VerifyToken(plainToken, tokenHash) {
			logger.Debug("authentication failed: token mismatch",
				slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
