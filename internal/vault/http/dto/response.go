package dto

import (
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// CredentialsResponse reports whether a tenant stored BaaS credentials.
// SECURITY: APIKey is returned to its owner only and must be served over HTTPS.
type CredentialsResponse struct {
	Configured bool   `json:"configured"`
	URL        string `json:"url,omitempty"`
	APIKey     string `json:"apiKey,omitempty"`
}

// MapCredentialsToResponse converts stored credentials to a configured response.
func MapCredentialsToResponse(creds *vaultDomain.BaaSCredentials) CredentialsResponse {
	return CredentialsResponse{
		Configured: true,
		URL:        creds.URL,
		APIKey:     creds.APIKey,
	}
}

// ConnectionStatusResponse reports whether a tenant stored a database connection.
type ConnectionStatusResponse struct {
	Connected bool `json:"connected"`
}

// SuccessResponse acknowledges a write.
type SuccessResponse struct {
	Success bool `json:"success"`
}
