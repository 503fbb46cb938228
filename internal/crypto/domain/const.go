package domain

// Algorithm represents the AEAD algorithm used to seal a credential record.
//
// Both algorithms use a 256-bit key, a 12-byte nonce and a 16-byte authentication tag,
// so records sealed with either share the same canonical layout.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. It is the default record algorithm.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305, preferred on hosts without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the size in bytes of every derived encryption key.
	KeySize = 32

	// NonceSize is the size in bytes of the initialization vector stored with each record.
	NonceSize = 12

	// TagSize is the size in bytes of the authentication tag stored with each record.
	TagSize = 16
)

// Valid reports whether the algorithm is supported.
func (a Algorithm) Valid() bool {
	return a == AESGCM || a == ChaCha20
}
