// Package domain defines the credential payloads kept in the vault and the rules they
// must satisfy before they are encrypted and stored.
package domain

import (
	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// StoreName partitions encrypted records by payload kind.
type StoreName string

const (
	// BaaSStore holds BaaSCredentials.
	BaaSStore StoreName = "baas"

	// DatabaseStore holds DatabaseConnection payloads.
	DatabaseStore StoreName = "database"
)

// AssociatedData binds a record to its store and tenant. Opening a record under any
// other pair fails authentication.
func AssociatedData(store StoreName, tenant authDomain.TenantID) []byte {
	return []byte(string(store) + "\x00" + tenant.String())
}
