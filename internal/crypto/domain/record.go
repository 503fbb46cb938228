package domain

import (
	"encoding/hex"
	"encoding/json"
	"time"
)

// EncryptedRecord is the at-rest form of one sealed secret.
//
// The ciphertext and the authentication tag are kept apart so every backend can store
// them as separate columns or fields. IV must be NonceSize bytes and Tag TagSize bytes;
// anything else is rejected when the record is opened.
type EncryptedRecord struct {
	Algorithm  Algorithm
	IV         []byte
	Tag        []byte
	Ciphertext []byte
	CreatedAt  time.Time
}

// encodedRecord is the canonical JSON layout with hex-encoded binary fields.
type encodedRecord struct {
	Algorithm            Algorithm `json:"algorithm"`
	InitializationVector string    `json:"initializationVector"`
	AuthenticationTag    string    `json:"authenticationTag"`
	Ciphertext           string    `json:"ciphertext"`
	CreatedAt            time.Time `json:"createdAt"`
}

// MarshalJSON encodes the record in its canonical form.
func (r EncryptedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(encodedRecord{
		Algorithm:            r.Algorithm,
		InitializationVector: hex.EncodeToString(r.IV),
		AuthenticationTag:    hex.EncodeToString(r.Tag),
		Ciphertext:           hex.EncodeToString(r.Ciphertext),
		CreatedAt:            r.CreatedAt.UTC(),
	})
}

// UnmarshalJSON decodes the canonical form. Records without an algorithm are AES-GCM.
// Malformed hex is reported as ErrDecryptionFailed since the record cannot be opened.
func (r *EncryptedRecord) UnmarshalJSON(data []byte) error {
	var enc encodedRecord
	if err := json.Unmarshal(data, &enc); err != nil {
		return ErrDecryptionFailed
	}

	iv, err := hex.DecodeString(enc.InitializationVector)
	if err != nil {
		return ErrDecryptionFailed
	}
	tag, err := hex.DecodeString(enc.AuthenticationTag)
	if err != nil {
		return ErrDecryptionFailed
	}
	ciphertext, err := hex.DecodeString(enc.Ciphertext)
	if err != nil {
		return ErrDecryptionFailed
	}

	alg := enc.Algorithm
	if alg == "" {
		alg = AESGCM
	}

	*r = EncryptedRecord{
		Algorithm:  alg,
		IV:         iv,
		Tag:        tag,
		Ciphertext: ciphertext,
		CreatedAt:  enc.CreatedAt,
	}
	return nil
}
