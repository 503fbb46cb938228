package app

import (
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
)

type cryptoComponents struct {
	kmsService           cryptoService.KMSService
	kmsMasterKeyProvider *cryptoService.KMSMasterKeyProvider
	masterKeyProvider    cryptoService.MasterKeyProvider
	aeadManager          cryptoService.AEADManager
	secretCipher         cryptoService.SecretCipher

	kmsServiceInit        sync.Once
	masterKeyProviderInit sync.Once
	aeadManagerInit       sync.Once
	secretCipherInit      sync.Once
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterKeyProvider returns the master key provider. With KMS_KEY_URI set the configured
// master key is treated as a KMS ciphertext and unwrapped on first use.
func (c *Container) MasterKeyProvider() cryptoService.MasterKeyProvider {
	c.masterKeyProviderInit.Do(func() {
		c.masterKeyProvider = c.initMasterKeyProvider()
	})
	return c.masterKeyProvider
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// SecretCipher returns the cipher that seals every credential record.
func (c *Container) SecretCipher() (cryptoService.SecretCipher, error) {
	var err error
	c.secretCipherInit.Do(func() {
		c.secretCipher, err = c.initSecretCipher()
		if err != nil {
			c.initErrors["secretCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretCipher"]; exists {
		return nil, storedErr
	}
	return c.secretCipher, nil
}

// NewSecretCipherForKey builds a cipher over an explicit master key value. The
// rotate-master-key command uses it for the new key.
func (c *Container) NewSecretCipherForKey(rawMasterKey string) (cryptoService.SecretCipher, error) {
	alg, err := c.cipherAlgorithm()
	if err != nil {
		return nil, err
	}
	return cryptoService.NewSecretCipher(
		cryptoService.NewStaticMasterKeyProvider(rawMasterKey),
		c.AEADManager(),
		alg,
	), nil
}

func (c *Container) initMasterKeyProvider() cryptoService.MasterKeyProvider {
	if c.config.KMSKeyURI == "" {
		return cryptoService.NewStaticMasterKeyProvider(c.config.VaultMasterKey)
	}

	c.Logger().Info("master key is wrapped by KMS",
		slog.String("kms_provider", c.config.KMSProvider),
	)
	c.kmsMasterKeyProvider = cryptoService.NewKMSMasterKeyProvider(
		c.KMSService(),
		c.config.KMSKeyURI,
		c.config.VaultMasterKey,
	)
	return c.kmsMasterKeyProvider
}

func (c *Container) initSecretCipher() (cryptoService.SecretCipher, error) {
	alg, err := c.cipherAlgorithm()
	if err != nil {
		return nil, err
	}
	if c.config.VaultMasterKey == "" {
		c.Logger().Warn("VAULT_MASTER_KEY is not set; credential operations will fail until it is configured")
	}
	return cryptoService.NewSecretCipher(c.MasterKeyProvider(), c.AEADManager(), alg), nil
}

func (c *Container) cipherAlgorithm() (cryptoDomain.Algorithm, error) {
	alg := cryptoDomain.Algorithm(c.config.VaultCipherAlgorithm)
	if alg == "" {
		return cryptoDomain.AESGCM, nil
	}
	if !alg.Valid() {
		return "", fmt.Errorf("unsupported cipher algorithm: %s", c.config.VaultCipherAlgorithm)
	}
	return alg, nil
}
