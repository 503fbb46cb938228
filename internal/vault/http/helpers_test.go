package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	authHTTP "github.com/allisson/tenantvault/internal/auth/http"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
)

const (
	testTenant    = authDomain.TenantID("6f1c2d3e-4a5b-4c6d-8e7f-0a1b2c3d4e5f")
	testMasterKey = "http-handler-test-master-key"
	testURL       = "https://abcd.supabase.co"
	testAPIKey    = "anon-key-0123456789abcdefghij"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCipher(masterKey string) cryptoService.SecretCipher {
	return cryptoService.NewSecretCipher(
		cryptoService.NewStaticMasterKeyProvider(masterKey),
		cryptoService.NewAEADManager(),
		cryptoDomain.AESGCM,
	)
}

// createTestContext builds a gin context with a JSON body and, when tenant is set, a resolved identity.
func createTestContext(
	method, path string,
	body any,
	tenant authDomain.TenantID,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if !tenant.IsZero() {
		req = req.WithContext(authHTTP.WithIdentity(req.Context(), authDomain.Identity{
			TenantID: tenant,
			Source:   authDomain.SourceBaaSSession,
		}))
	}
	c.Request = req

	return c, w
}
