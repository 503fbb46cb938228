// Package httputil provides HTTP request parsing and error response helpers shared by the
// Gin handlers.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/tenantvault/internal/errors"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Code     string `json:"code,omitempty"`
	SetupURL string `json:"setup_url,omitempty"`
}

type errorMapping struct {
	category error
	status   int
	code     string
	// message is returned as-is; empty means the error text is safe to return.
	message string
}

// errorMappings is checked in order, so an error carrying several categories takes the
// first listed.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input", ""},
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{apperrors.ErrMisconfigured, http.StatusInternalServerError, "server_misconfigured",
		"Server encryption is not configured"},
	{apperrors.ErrCorrupted, http.StatusInternalServerError, "data_corrupted",
		"Stored credentials could not be decrypted"},
	{apperrors.ErrUnavailable, http.StatusInternalServerError, "connection_error",
		"Failed to connect to the tenant backend"},
}

// HandleErrorGin writes the status and body for err's category. Only invalid input
// echoes the error text; connection details and key material never leave the server.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}
	for _, m := range errorMappings {
		if !apperrors.Is(err, m.category) {
			continue
		}
		status = m.status
		resp = ErrorResponse{Error: m.code, Message: m.message}
		if m.message == "" {
			resp.Message = err.Error()
		}
		break
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", status),
			slog.String("error_code", resp.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(status, resp)
}

// HandleBadRequestGin answers 400 for a body or parameter that could not be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, "bad_request", "bad request", err, logger)
}

// HandleValidationErrorGin answers 400 for a decoded request that failed validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, "validation_error", "validation failed", err, logger)
}

func writeClientError(c *gin.Context, code, logMessage string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn(logMessage, slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: code, Message: err.Error()})
}
