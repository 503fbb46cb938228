package domain

import "github.com/golang-jwt/jwt/v5"

// BaaSSessionClaims are the claims of an access token issued by the BaaS auth service.
type BaaSSessionClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenSessionClaims are the claims of a session token signed by this application.
type TokenSessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
