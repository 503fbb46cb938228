// Package dto provides data transfer objects for the vault HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"

	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// SaveCredentialsRequest contains a BaaS project URL and API key.
// Shape checks only; host and key length rules are enforced by the credential store.
type SaveCredentialsRequest struct {
	URL    string `json:"url"`
	APIKey string `json:"apiKey"`
}

// Validate checks that both fields are present.
func (r *SaveCredentialsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.URL, validation.Required),
		validation.Field(&r.APIKey, validation.Required),
	)
}

// ToDomain maps the request to the stored payload.
func (r *SaveCredentialsRequest) ToDomain() vaultDomain.BaaSCredentials {
	return vaultDomain.BaaSCredentials{URL: r.URL, APIKey: r.APIKey}
}

// SaveConnectionRequest contains a PostgreSQL connection string.
type SaveConnectionRequest struct {
	ConnectionString string `json:"connectionString"`
}

// Validate checks that the connection string is present.
func (r *SaveConnectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ConnectionString, validation.Required),
	)
}

// ToDomain maps the request to the stored payload.
func (r *SaveConnectionRequest) ToDomain() vaultDomain.DatabaseConnection {
	return vaultDomain.DatabaseConnection{ConnectionString: r.ConnectionString}
}
