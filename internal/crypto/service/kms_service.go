package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSSchemes lists the keeper URI schemes the binary is built with. base64key is a local
// key for development and tests.
var KMSSchemes = []string{"awskms", "azurekeyvault", "gcpkms", "hashivault", "base64key"}

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	u, err := url.Parse(keyURI)
	if err != nil || !slices.Contains(KMSSchemes, u.Scheme) {
		return nil, fmt.Errorf("unsupported KMS key URI %q", redactKeyURI(u, keyURI))
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%s keeper: %w", u.Scheme, err)
	}
	return keeper, nil
}

// redactKeyURI keeps only the scheme of a key URI; base64key URIs carry key material.
func redactKeyURI(u *url.URL, raw string) string {
	if u == nil || u.Scheme == "" {
		if raw == "" {
			return ""
		}
		return "<invalid>"
	}
	return u.Scheme + "://..."
}
