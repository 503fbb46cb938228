package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

func TestSaveCredentialsRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := SaveCredentialsRequest{URL: "https://abcd.supabase.co", APIKey: "anon-key-0123456789abcdef"}

		assert.NoError(t, req.Validate())
		assert.Equal(t, vaultDomain.BaaSCredentials{
			URL:    "https://abcd.supabase.co",
			APIKey: "anon-key-0123456789abcdef",
		}, req.ToDomain())
	})

	t.Run("Error_MissingURL", func(t *testing.T) {
		req := SaveCredentialsRequest{APIKey: "anon-key-0123456789abcdef"}

		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "url")
	})

	t.Run("Error_MissingAPIKey", func(t *testing.T) {
		req := SaveCredentialsRequest{URL: "https://abcd.supabase.co"}

		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "apiKey")
	})
}

func TestSaveConnectionRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := SaveConnectionRequest{ConnectionString: "postgresql://u:p@db:5432/app"}

		assert.NoError(t, req.Validate())
		assert.Equal(t, "postgresql://u:p@db:5432/app", req.ToDomain().ConnectionString)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		req := SaveConnectionRequest{}

		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connectionString")
	})
}
