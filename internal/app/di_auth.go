package app

import (
	authService "github.com/allisson/utilkit/internal/auth/service"
)

// TokenService returns the API token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = c.initTokenService()
	})
	return c.tokenService
}

// initTokenService creates the API token service.
func (c *Container) initTokenService() authService.TokenService {
	return authService.NewTokenService()
}
