// Package domain defines the tenant identity model: who a request acts for and
// which session source vouched for it.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TokenNamespace prefixes identities resolved from the token session source.
//
// BaaS identities are UUIDs and never contain ':', so a prefixed identity can
// never collide with one issued by the BaaS.
const TokenNamespace = "token:"

// Source names the identity provider that resolved a tenant.
type Source string

const (
	// SourceBaaSSession is the backend-as-a-service session cookie or bearer token.
	SourceBaaSSession Source = "baas_session"

	// SourceTokenSession is the application's own signed session token.
	SourceTokenSession Source = "token_session"
)

// TenantID is the stable identifier that partitions every stored secret.
type TenantID string

// NewTokenTenantID builds the namespaced identity for a token session. The email is
// preferred; the subject is used when the token carries no email.
func NewTokenTenantID(email, subject string) TenantID {
	if email != "" {
		return TenantID(TokenNamespace + email)
	}
	return TenantID(TokenNamespace + subject)
}

// String returns the raw identifier. Use Redacted for logs.
func (t TenantID) String() string {
	return string(t)
}

// IsZero reports whether no tenant is set.
func (t TenantID) IsZero() bool {
	return t == ""
}

// IsTokenScoped reports whether the identity came from the token session source.
func (t TenantID) IsTokenScoped() bool {
	return strings.HasPrefix(string(t), TokenNamespace)
}

// Redacted returns a short stable fingerprint that is safe to log.
func (t TenantID) Redacted() string {
	sum := sha256.Sum256([]byte(t))
	return "tenant-" + hex.EncodeToString(sum[:6])
}

// Identity is a resolved tenant together with the source that resolved it.
type Identity struct {
	TenantID TenantID
	Source   Source
}
