package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
	vaultUseCase "github.com/allisson/tenantvault/internal/vault/usecase"
)

// CipherFactory builds a SecretCipher over an explicit master key value.
type CipherFactory func(masterKey string) (cryptoService.SecretCipher, error)

// RunRotateMasterKey re-encrypts every stored credential under a new master key and prints
// the configuration that must replace VAULT_MASTER_KEY before the next restart.
//
// An empty newMasterKey generates one. With kmsKeyURI set the new key is wrapped by the KMS
// before any record is touched, so a KMS failure leaves the vault unchanged. The new
// configuration is printed before the first record is written.
func RunRotateMasterKey(
	ctx context.Context,
	rotation vaultUseCase.RotationUseCase,
	newCipher CipherFactory,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	newMasterKey, kmsProvider, kmsKeyURI string,
) error {
	if newMasterKey == "" {
		generated, err := generateMasterKey()
		if err != nil {
			return err
		}
		newMasterKey = generated
	}

	configured := newMasterKey
	if kmsKeyURI != "" {
		wrapped, err := wrapMasterKey(ctx, kmsService, logger, kmsKeyURI, newMasterKey)
		if err != nil {
			return err
		}
		configured = wrapped
	}

	target, err := newCipher(newMasterKey)
	if err != nil {
		return fmt.Errorf("failed to create cipher for the new master key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Update these environment variables and restart the application")
	_, _ = fmt.Fprintln(writer)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "VAULT_MASTER_KEY=\"%s\"\n", configured)
	_, _ = fmt.Fprintln(writer)

	rotated, err := rotation.Rotate(ctx, target)
	if err != nil {
		_, _ = fmt.Fprintln(writer, "# Rotation failed: keep the previous VAULT_MASTER_KEY until the error is resolved")
		return fmt.Errorf("failed to rotate master key: %w", err)
	}

	logger.Info("master key rotation completed", slog.Int("records", rotated))
	_, _ = fmt.Fprintf(writer, "# Re-encrypted %d credential record(s)\n", rotated)

	return nil
}
