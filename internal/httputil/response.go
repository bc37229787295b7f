// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/utilkit/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorStatus is the HTTP status and client message of each error code. Invalid input
// responses carry the error text instead.
var errorStatus = map[string]struct {
	status  int
	message string
}{
	apperrors.CodeNotFound:      {http.StatusNotFound, "The requested resource was not found"},
	apperrors.CodeConflict:      {http.StatusConflict, "A conflict occurred with existing data"},
	apperrors.CodeInvalidInput:  {http.StatusUnprocessableEntity, ""},
	apperrors.CodeUnauthorized:  {http.StatusUnauthorized, "Authentication is required"},
	apperrors.CodeForbidden:     {http.StatusForbidden, "You don't have permission to access this resource"},
	apperrors.CodeConfiguration: {http.StatusInternalServerError, "The settings backend could not complete the operation"},
	apperrors.CodeInternal:      {http.StatusInternalServerError, "An internal error occurred"},
}

// HandleErrorGin writes the JSON error response for err using the status of its
// apperrors.Code. Internal details are only logged, except for invalid input whose message
// tells the client what to fix.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	code := apperrors.Code(err)
	mapped := errorStatus[code]
	statusCode := mapped.status
	errorResponse := ErrorResponse{Error: code, Message: mapped.message}
	if code == apperrors.CodeInvalidInput {
		errorResponse.Message = err.Error()
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}
