package http

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	authHTTP "github.com/allisson/tenantvault/internal/auth/http"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
	"github.com/allisson/tenantvault/internal/httputil"
	customValidation "github.com/allisson/tenantvault/internal/validation"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	"github.com/allisson/tenantvault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/tenantvault/internal/vault/usecase"
)

// tempCredentialsAAD binds sealed cookies to this purpose so no stored record can be replayed as one.
var tempCredentialsAAD = []byte("temp-credentials")

// TempCredentialsConfig configures the sealed cookie and the callback redirects.
type TempCredentialsConfig struct {
	CookieName   string
	TTL          time.Duration
	SecureCookie bool
	DefaultNext  string
	ErrorPath    string
}

// DefaultTempCredentialsConfig returns a five minute cookie and the default redirects.
func DefaultTempCredentialsConfig() TempCredentialsConfig {
	return TempCredentialsConfig{
		CookieName:   "temp_baas_credentials",
		TTL:          5 * time.Minute,
		SecureCookie: true,
		DefaultNext:  "/dashboard",
		ErrorPath:    "/auth/auth-code-error",
	}
}

// sealedCredentials is the plaintext inside the temporary cookie.
type sealedCredentials struct {
	URL       string    `json:"url"`
	APIKey    string    `json:"apiKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TempCredentialsHandler captures BaaS credentials before sign-in and persists them for the
// tenant that the sign-in resolves to.
type TempCredentialsHandler struct {
	cipher    cryptoService.SecretCipher
	rules     vaultDomain.BaaSCredentialRules
	baasStore vaultUseCase.BaaSCredentialStore
	config    TempCredentialsConfig
	logger    *slog.Logger
}

// NewTempCredentialsHandler creates a new temporary credentials handler.
func NewTempCredentialsHandler(
	cipher cryptoService.SecretCipher,
	rules vaultDomain.BaaSCredentialRules,
	baasStore vaultUseCase.BaaSCredentialStore,
	config TempCredentialsConfig,
	logger *slog.Logger,
) *TempCredentialsHandler {
	return &TempCredentialsHandler{
		cipher:    cipher,
		rules:     rules,
		baasStore: baasStore,
		config:    config,
		logger:    logger,
	}
}

// CaptureHandler validates BaaS credentials and stores them in a sealed HttpOnly cookie.
// POST /v1/temp-credentials - Unauthenticated. Returns 200 {success:true}.
func (h *TempCredentialsHandler) CaptureHandler(c *gin.Context) {
	var req dto.SaveCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rules.Validate(req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	record, err := h.cipher.Encrypt(c.Request.Context(), sealedCredentials{
		URL:       req.URL,
		APIKey:    req.APIKey,
		ExpiresAt: time.Now().Add(h.config.TTL).UTC(),
	}, tempCredentialsAAD)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setCookie(c, base64.RawURLEncoding.EncodeToString(encoded), int(h.config.TTL.Seconds()))
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CallbackHandler finishes sign-in: it persists captured credentials for the resolved
// tenant, clears the cookie and redirects to next.
// GET /auth/callback?next=/path - Without a tenant it redirects to the error page.
// Failing to persist is logged and does not block the redirect.
func (h *TempCredentialsHandler) CallbackHandler(c *gin.Context) {
	tenant, ok := authHTTP.GetTenant(c.Request.Context())
	if !ok {
		c.Redirect(http.StatusFound, h.config.ErrorPath)
		return
	}

	if raw, err := c.Cookie(h.config.CookieName); err == nil && raw != "" {
		h.setCookie(c, "", -1)

		creds, err := h.open(c, raw)
		if err != nil {
			h.logger.Warn("discarding temporary credentials",
				slog.String("tenant", tenant.Redacted()),
				slog.Any("error", err),
			)
		} else if err := h.baasStore.Save(c.Request.Context(), tenant, creds); err != nil {
			h.logger.Error("failed to persist temporary credentials",
				slog.String("tenant", tenant.Redacted()),
				slog.Any("error", err),
			)
		}
	}

	c.Redirect(http.StatusFound, h.nextPath(c.Query("next")))
}

func (h *TempCredentialsHandler) open(c *gin.Context, raw string) (vaultDomain.BaaSCredentials, error) {
	encoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return vaultDomain.BaaSCredentials{}, cryptoDomain.ErrDecryptionFailed
	}

	var record cryptoDomain.EncryptedRecord
	if err := json.Unmarshal(encoded, &record); err != nil {
		return vaultDomain.BaaSCredentials{}, cryptoDomain.ErrDecryptionFailed
	}

	var sealed sealedCredentials
	if err := h.cipher.Decrypt(c.Request.Context(), &record, tempCredentialsAAD, &sealed); err != nil {
		return vaultDomain.BaaSCredentials{}, err
	}

	if time.Now().After(sealed.ExpiresAt) {
		return vaultDomain.BaaSCredentials{}, errTempCredentialsExpired
	}

	return vaultDomain.BaaSCredentials{URL: sealed.URL, APIKey: sealed.APIKey}, nil
}

// nextPath accepts local paths only so the callback cannot be used as an open redirect.
func (h *TempCredentialsHandler) nextPath(next string) string {
	if next == "" {
		return h.config.DefaultNext
	}
	if err := validation.Validate(next, customValidation.LocalPath); err != nil {
		return h.config.DefaultNext
	}
	return next
}

func (h *TempCredentialsHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.CookieName, value, maxAge, "/", "", h.config.SecureCookie, true)
}
