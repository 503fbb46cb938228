package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	"github.com/allisson/tenantvault/internal/vault/http/dto"
	"github.com/allisson/tenantvault/internal/vault/usecase/mocks"
)

func setupTempCredentialsHandler(
	t *testing.T,
) (*TempCredentialsHandler, *mocks.MockCredentialStore[vaultDomain.BaaSCredentials]) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	baasStore := &mocks.MockCredentialStore[vaultDomain.BaaSCredentials]{}
	t.Cleanup(func() { baasStore.AssertExpectations(t) })

	handler := NewTempCredentialsHandler(
		newTestCipher(testMasterKey),
		vaultDomain.DefaultBaaSCredentialRules(),
		baasStore,
		DefaultTempCredentialsConfig(),
		createTestLogger(),
	)
	return handler, baasStore
}

// captureCookie runs CaptureHandler and returns the sealed cookie it set.
func captureCookie(t *testing.T, handler *TempCredentialsHandler) *http.Cookie {
	t.Helper()

	c, w := createTestContext(http.MethodPost, "/v1/temp-credentials",
		dto.SaveCredentialsRequest{URL: testURL, APIKey: testAPIKey}, "")
	handler.CaptureHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == handler.config.CookieName {
			return cookie
		}
	}
	t.Fatal("temporary credentials cookie not set")
	return nil
}

func callback(
	handler *TempCredentialsHandler,
	target string,
	tenant authDomain.TenantID,
	cookie *http.Cookie,
) *http.Response {
	c, w := createTestContext(http.MethodGet, target, nil, tenant)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	handler.CallbackHandler(c)
	return w.Result()
}

func TestTempCredentialsHandler_CaptureHandler(t *testing.T) {
	t.Run("Success_SealedHttpOnlyCookie", func(t *testing.T) {
		handler, _ := setupTempCredentialsHandler(t)

		cookie := captureCookie(t, handler)

		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, 300, cookie.MaxAge)
		assert.Equal(t, "/", cookie.Path)
		assert.NotContains(t, cookie.Value, testAPIKey)

		raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), testAPIKey)
	})

	t.Run("Error_ForeignHost", func(t *testing.T) {
		handler, _ := setupTempCredentialsHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/temp-credentials",
			dto.SaveCredentialsRequest{URL: "https://example.com", APIKey: testAPIKey}, "")
		handler.CaptureHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		handler, _ := setupTempCredentialsHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/temp-credentials", dto.SaveCredentialsRequest{}, "")
		handler.CaptureHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MasterKeyMissing", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		handler := NewTempCredentialsHandler(
			newTestCipher(""),
			vaultDomain.DefaultBaaSCredentialRules(),
			&mocks.MockCredentialStore[vaultDomain.BaaSCredentials]{},
			DefaultTempCredentialsConfig(),
			createTestLogger(),
		)

		c, w := createTestContext(http.MethodPost, "/v1/temp-credentials",
			dto.SaveCredentialsRequest{URL: testURL, APIKey: testAPIKey}, "")
		handler.CaptureHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "server_misconfigured")
	})
}

func TestTempCredentialsHandler_CallbackHandler(t *testing.T) {
	t.Run("Success_PersistsAndClearsCookie", func(t *testing.T) {
		handler, baasStore := setupTempCredentialsHandler(t)
		cookie := captureCookie(t, handler)
		baasStore.On("Save", mock.Anything, testTenant,
			vaultDomain.BaaSCredentials{URL: testURL, APIKey: testAPIKey}).Return(nil).Once()

		resp := callback(handler, "/auth/callback?next=/projects", testTenant, cookie)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/projects", resp.Header.Get("Location"))
		require.Len(t, resp.Cookies(), 1)
		assert.Equal(t, handler.config.CookieName, resp.Cookies()[0].Name)
		assert.Equal(t, -1, resp.Cookies()[0].MaxAge)
	})

	t.Run("Success_NoCookieRedirectsToDefault", func(t *testing.T) {
		handler, baasStore := setupTempCredentialsHandler(t)

		resp := callback(handler, "/auth/callback", testTenant, nil)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
		baasStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success_SaveFailureDoesNotBlockRedirect", func(t *testing.T) {
		handler, baasStore := setupTempCredentialsHandler(t)
		cookie := captureCookie(t, handler)
		baasStore.On("Save", mock.Anything, testTenant, mock.Anything).Return(errors.New("disk full")).Once()

		resp := callback(handler, "/auth/callback", testTenant, cookie)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("OpenRedirectRejected", func(t *testing.T) {
		handler, _ := setupTempCredentialsHandler(t)

		for _, next := range []string{"https://evil.example", "//evil.example", `/\evil.example`} {
			resp := callback(handler, "/auth/callback?next="+url.QueryEscape(next), testTenant, nil)
			assert.Equal(t, "/dashboard", resp.Header.Get("Location"), next)
		}
	})

	t.Run("NoTenant_RedirectsToErrorPage", func(t *testing.T) {
		handler, baasStore := setupTempCredentialsHandler(t)
		cookie := captureCookie(t, handler)

		resp := callback(handler, "/auth/callback", "", cookie)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth/auth-code-error", resp.Header.Get("Location"))
		baasStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TamperedCookieDiscarded", func(t *testing.T) {
		handler, baasStore := setupTempCredentialsHandler(t)
		cookie := captureCookie(t, handler)
		cookie.Value = cookie.Value[:len(cookie.Value)-4] + "AAAA"

		resp := callback(handler, "/auth/callback", testTenant, cookie)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		baasStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ExpiredCookieDiscarded", func(t *testing.T) {
		handler, baasStore := setupTempCredentialsHandler(t)

		c, _ := createTestContext(http.MethodPost, "/v1/temp-credentials", nil, "")
		record, err := handler.cipher.Encrypt(c.Request.Context(), sealedCredentials{
			URL:       testURL,
			APIKey:    testAPIKey,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, tempCredentialsAAD)
		require.NoError(t, err)
		encoded, err := json.Marshal(record)
		require.NoError(t, err)

		cookie := &http.Cookie{
			Name:  handler.config.CookieName,
			Value: base64.RawURLEncoding.EncodeToString(encoded),
		}

		resp := callback(handler, "/auth/callback", testTenant, cookie)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		baasStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}
