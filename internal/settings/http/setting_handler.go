// Package http provides HTTP handlers for protected settings. Values are decrypted for
// GET and encrypted before they reach the settings backend on PUT.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/utilkit/internal/httputil"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
	"github.com/allisson/utilkit/internal/settings/http/dto"
	settingsUseCase "github.com/allisson/utilkit/internal/settings/usecase"
	customValidation "github.com/allisson/utilkit/internal/validation"
)

// StoreProvider resolves the protected store of a section.
type StoreProvider interface {
	Store(section settingsDomain.Section) (settingsUseCase.SettingStore, error)
}

// SettingHandler handles HTTP requests for protected settings.
type SettingHandler struct {
	stores StoreProvider
	logger *slog.Logger
}

// NewSettingHandler creates a new setting handler with required dependencies.
func NewSettingHandler(stores StoreProvider, logger *slog.Logger) *SettingHandler {
	return &SettingHandler{
		stores: stores,
		logger: logger,
	}
}

// ListKeysHandler lists the declared keys of a section.
// GET /v1/settings/:section?offset=0&limit=100
func (h *SettingHandler) ListKeysHandler(c *gin.Context) {
	section := c.Param("section")
	if err := customValidation.Section.Validate(section); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	store, err := h.stores.Store(settingsDomain.Section(section))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	keys, err := store.Keys(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeysToListResponse(section, keys, page))
}

// GetHandler returns the decrypted value of a setting.
// GET /v1/settings/:section/:key
func (h *SettingHandler) GetHandler(c *gin.Context) {
	store, params, ok := h.resolve(c)
	if !ok {
		return
	}

	value, err := store.Read(c.Request.Context(), params.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SettingResponse{
		Section: params.Section,
		Key:     params.Key,
		Value:   value,
	})
}

// WriteHandler encrypts and stores the value of a declared setting.
// PUT /v1/settings/:section/:key
// Returns 204 No Content.
func (h *SettingHandler) WriteHandler(c *gin.Context) {
	store, params, ok := h.resolve(c)
	if !ok {
		return
	}

	var req dto.WriteSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := store.Write(c.Request.Context(), params.Key, *req.Value); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DeclareHandler creates an empty setting.
// POST /v1/settings/:section/:key
// Returns 201 Created, or 200 OK when the setting was already declared.
func (h *SettingHandler) DeclareHandler(c *gin.Context) {
	store, params, ok := h.resolve(c)
	if !ok {
		return
	}

	created, err := store.Declare(c.Request.Context(), params.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, dto.DeclareSettingResponse{
		Section: params.Section,
		Key:     params.Key,
		Created: created,
	})
}

// resolve validates the path parameters and returns the store of the section. It writes
// the error response itself and reports false when the request cannot continue.
func (h *SettingHandler) resolve(c *gin.Context) (settingsUseCase.SettingStore, dto.SettingPathParams, bool) {
	params := dto.SettingPathParams{
		Section: c.Param("section"),
		Key:     c.Param("key"),
	}

	if err := params.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, params, false
	}

	store, err := h.stores.Store(settingsDomain.Section(params.Section))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return nil, params, false
	}

	return store, params, true
}
