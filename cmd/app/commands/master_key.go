package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
)

// RunCreateMasterKey generates a 32-byte master key and prints it as environment variables.
//
// Without KMS parameters the key is printed in plain form for VAULT_MASTER_KEY. With
// kmsProvider and kmsKeyURI the key is encrypted by the KMS first and VAULT_MASTER_KEY
// carries the ciphertext. kmsService may be nil in plain mode.
//
// For local development, use kmsProvider="localsecrets" with kmsKeyURI="base64key://...".
// Never use localsecrets in production.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri are required together")
	}

	masterKey, err := generateMasterKey()
	if err != nil {
		return err
	}

	if kmsKeyURI == "" {
		logger.Warn("master key printed without KMS protection; store it in a secrets manager")

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration")
		_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "VAULT_MASTER_KEY=\"%s\"\n", masterKey)
		return nil
	}

	wrapped, err := wrapMasterKey(ctx, kmsService, logger, kmsKeyURI, masterKey)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "VAULT_MASTER_KEY=\"%s\"\n", wrapped)

	return nil
}
