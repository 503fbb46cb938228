// Package http provides the HTTP handlers tenants use to store, inspect and remove their
// backend credentials, plus the temporary-credential capture used around sign-in.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	authHTTP "github.com/allisson/tenantvault/internal/auth/http"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	"github.com/allisson/tenantvault/internal/httputil"
	customValidation "github.com/allisson/tenantvault/internal/validation"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	"github.com/allisson/tenantvault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/tenantvault/internal/vault/usecase"
)

// CredentialsHandler handles the per-tenant credential endpoints.
// Every handler requires a resolved tenant in the request context.
type CredentialsHandler struct {
	baasStore     vaultUseCase.BaaSCredentialStore
	databaseStore vaultUseCase.DatabaseCredentialStore
	logger        *slog.Logger
}

// NewCredentialsHandler creates a new credentials handler.
func NewCredentialsHandler(
	baasStore vaultUseCase.BaaSCredentialStore,
	databaseStore vaultUseCase.DatabaseCredentialStore,
	logger *slog.Logger,
) *CredentialsHandler {
	return &CredentialsHandler{
		baasStore:     baasStore,
		databaseStore: databaseStore,
		logger:        logger,
	}
}

// GetCredentialsHandler returns the tenant's BaaS credentials.
// GET /v1/credentials - Returns {configured:false} when nothing is stored.
func (h *CredentialsHandler) GetCredentialsHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	creds, err := h.baasStore.Load(c.Request.Context(), tenant)
	if err != nil {
		if apperrors.Is(err, vaultDomain.ErrNotConfigured) {
			c.JSON(http.StatusOK, dto.CredentialsResponse{Configured: false})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialsToResponse(creds))
}

// SaveCredentialsHandler validates, encrypts and stores the tenant's BaaS credentials.
// POST /v1/credentials - Returns 200 {success:true}.
func (h *CredentialsHandler) SaveCredentialsHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.SaveCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.baasStore.Save(c.Request.Context(), tenant, req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// DeleteCredentialsHandler removes the tenant's BaaS credentials.
// DELETE /v1/credentials - Returns 204 No Content, also when nothing was stored.
func (h *CredentialsHandler) DeleteCredentialsHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.baasStore.Delete(c.Request.Context(), tenant); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ConnectionStatusHandler reports whether the tenant stored a database connection.
// GET /v1/connection-status - Existence check only; nothing is decrypted or dialled.
func (h *CredentialsHandler) ConnectionStatusHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	connected, err := h.databaseStore.Exists(c.Request.Context(), tenant)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ConnectionStatusResponse{Connected: connected})
}

// SaveConnectionHandler live-validates and stores the tenant's connection string.
// POST /v1/connection - Returns 400 for a malformed or unreachable database.
func (h *CredentialsHandler) SaveConnectionHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.SaveConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.databaseStore.Save(c.Request.Context(), tenant, req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// DeleteConnectionHandler removes the tenant's connection string.
// DELETE /v1/connection - Returns 204 No Content.
func (h *CredentialsHandler) DeleteConnectionHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.databaseStore.Delete(c.Request.Context(), tenant); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *CredentialsHandler) tenant(c *gin.Context) (authDomain.TenantID, bool) {
	tenant, ok := authHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrUnauthenticated, h.logger)
		return "", false
	}
	return tenant, true
}
