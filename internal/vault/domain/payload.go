package domain

import (
	"fmt"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/tenantvault/internal/validation"
)

// BaaSCredentials is a tenant's backend-as-a-service project URL and API key.
type BaaSCredentials struct {
	URL    string `json:"url"`
	APIKey string `json:"apiKey"`
}

// DatabaseConnection is a tenant's PostgreSQL connection string.
type DatabaseConnection struct {
	ConnectionString string `json:"connectionString"`
}

// BaaSCredentialRules holds the acceptance rules for BaaSCredentials.
type BaaSCredentialRules struct {
	AllowedHostSuffixes []string
	MinAPIKeyLength     int
}

// DefaultBaaSCredentialRules accepts hosted Supabase projects.
func DefaultBaaSCredentialRules() BaaSCredentialRules {
	return BaaSCredentialRules{
		AllowedHostSuffixes: []string{".supabase.co"},
		MinAPIKeyLength:     20,
	}
}

// Validate checks the credentials and returns ErrInvalidCredentialFormat with the reason.
func (r BaaSCredentialRules) Validate(c BaaSCredentials) error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.URL,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.URLHostSuffix(r.AllowedHostSuffixes...),
		),
		validation.Field(&c.APIKey,
			validation.Required,
			customValidation.NoWhitespace,
			validation.RuneLength(r.MinAPIKeyLength, 0),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCredentialFormat, err.Error())
	}
	return nil
}

// DatabaseConnectionRules holds the acceptance rules for DatabaseConnection.
type DatabaseConnectionRules struct {
	AllowedSchemes []string
}

// DefaultDatabaseConnectionRules accepts PostgreSQL URLs.
func DefaultDatabaseConnectionRules() DatabaseConnectionRules {
	return DatabaseConnectionRules{
		AllowedSchemes: []string{"postgresql://", "postgres://"},
	}
}

// Validate checks the connection string and returns ErrInvalidCredentialFormat with the reason.
func (r DatabaseConnectionRules) Validate(c DatabaseConnection) error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ConnectionString,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.HasPrefix(r.AllowedSchemes...),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCredentialFormat, err.Error())
	}
	return nil
}
