package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/utilkit/internal/errors"
	"github.com/allisson/utilkit/internal/httputil"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
	"github.com/allisson/utilkit/internal/settings/http/dto"
	settingsUseCase "github.com/allisson/utilkit/internal/settings/usecase"
	"github.com/allisson/utilkit/internal/settings/usecase/mocks"
)

// setupTestHandler creates a handler whose appSettings store is a mock.
func setupTestHandler(t *testing.T) (*SettingHandler, *mocks.MockSettingStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store := &mocks.MockSettingStore{}
	t.Cleanup(func() {
		store.AssertExpectations(t)
	})

	stores := &settingsUseCase.CryptoConfiguration{
		AppSettings:       store,
		ConnectionStrings: &mocks.MockSettingStore{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSettingHandler(stores, logger), store
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func settingParams(section, key string) gin.Params {
	return gin.Params{{Key: "section", Value: section}, {Key: "key", Value: key}}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSettingHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Read", mock.Anything, "ApiKey").Return("s3cr3t", nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/settings/appSettings/ApiKey", nil)
		c.Params = settingParams("appSettings", "ApiKey")

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.SettingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.SettingResponse{Section: "appSettings", Key: "ApiKey", Value: "s3cr3t"}, resp)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Read", mock.Anything, "Missing").Return("", settingsDomain.ErrSettingNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/settings/appSettings/Missing", nil)
		c.Params = settingParams("appSettings", "Missing")

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeError(t, w).Error)
	})

	t.Run("Error_UnknownSection", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/settings/other/ApiKey", nil)
		c.Params = settingParams("other", "ApiKey")

		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation_error", decodeError(t, w).Error)
	})

	t.Run("Error_InvalidKey", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/settings/appSettings/bad%20key", nil)
		c.Params = settingParams("appSettings", "bad key")

		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestSettingHandler_WriteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Write", mock.Anything, "ApiKey", "s3cr3t").Return(nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/settings/appSettings/ApiKey", map[string]string{"value": "s3cr3t"})
		c.Params = settingParams("appSettings", "ApiKey")

		handler.WriteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Success_EmptyValueClears", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Write", mock.Anything, "ApiKey", "").Return(nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/settings/appSettings/ApiKey", map[string]string{"value": ""})
		c.Params = settingParams("appSettings", "ApiKey")

		handler.WriteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_MissingValue", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/settings/appSettings/ApiKey", map[string]string{})
		c.Params = settingParams("appSettings", "ApiKey")

		handler.WriteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/v1/settings/appSettings/ApiKey", bytes.NewBufferString("{"))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = settingParams("appSettings", "ApiKey")

		handler.WriteHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UndeclaredSetting", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Write", mock.Anything, "Missing", "x").
			Return(fmt.Errorf("%w: %w", apperrors.ErrConfiguration, settingsDomain.ErrSettingNotFound)).Once()

		c, w := createTestContext(http.MethodPut, "/v1/settings/appSettings/Missing", map[string]string{"value": "x"})
		c.Params = settingParams("appSettings", "Missing")

		handler.WriteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_PersistFailed", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Write", mock.Anything, "ApiKey", "x").Return(settingsDomain.ErrPersistFailed).Once()

		c, w := createTestContext(http.MethodPut, "/v1/settings/appSettings/ApiKey", map[string]string{"value": "x"})
		c.Params = settingParams("appSettings", "ApiKey")

		handler.WriteHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "configuration_error", decodeError(t, w).Error)
	})
}

func TestSettingHandler_DeclareHandler(t *testing.T) {
	t.Run("Success_Created", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Declare", mock.Anything, "ApiKey").Return(true, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/settings/appSettings/ApiKey", nil)
		c.Params = settingParams("appSettings", "ApiKey")

		handler.DeclareHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.DeclareSettingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Created)
	})

	t.Run("Success_AlreadyDeclared", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Declare", mock.Anything, "ApiKey").Return(false, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/settings/appSettings/ApiKey", nil)
		c.Params = settingParams("appSettings", "ApiKey")

		handler.DeclareHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_Backend", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Declare", mock.Anything, "ApiKey").Return(false, assert.AnError).Once()

		c, w := createTestContext(http.MethodPost, "/v1/settings/appSettings/ApiKey", nil)
		c.Params = settingParams("appSettings", "ApiKey")

		handler.DeclareHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSettingHandler_ListKeysHandler(t *testing.T) {
	t.Run("Success_Paginated", func(t *testing.T) {
		handler, store := setupTestHandler(t)
		store.On("Keys", mock.Anything).Return([]string{"A", "B", "C"}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/settings/appSettings?offset=1&limit=1", nil)
		c.Params = gin.Params{{Key: "section", Value: "appSettings"}}

		handler.ListKeysHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.ListSettingKeysResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"B"}, resp.Data)
		assert.Equal(t, 1, resp.Offset)
		assert.Equal(t, 1, resp.Limit)
		assert.Equal(t, 3, resp.Total)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/settings/appSettings?limit=1000", nil)
		c.Params = gin.Params{{Key: "section", Value: "appSettings"}}

		handler.ListKeysHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UnknownSection", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/settings/other", nil)
		c.Params = gin.Params{{Key: "section", Value: "other"}}

		handler.ListKeysHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
