package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// KeySize is the required key length for AES-256.
const KeySize = 32

// Vault encrypts and decrypts short secrets with AES-256-GCM under a single
// symmetric key. It is safe for concurrent use; the only state is the key.
type Vault struct {
	key []byte
}

// New creates a Vault from a raw 32-byte key. The key is copied so the caller
// may zero its own buffer afterwards.
func New(key []byte) (*Vault, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Vault{key: k}, nil
}

// NewFromBase64 creates a Vault from a base64-encoded key, the form used in
// environment configuration.
func NewFromBase64(encoded string) (*Vault, error) {
	key, err := ParseKey(encoded)
	if err != nil {
		return nil, err
	}
	return New(key)
}

// ParseKey decodes a base64-encoded key and validates its length.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrInvalidKeyEncoding, err)
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	return key, nil
}

// GenerateKey returns a fresh random key as a base64 string, for use when
// provisioning a new deployment.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Encrypt seals the plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext).
func (v *Vault) Encrypt(plaintext string) (string, error) {
	gcm, err := v.aead()
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any malformed input or a ciphertext produced
// under a different key fails with ErrDecryptionFailed.
func (v *Vault) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	gcm, err := v.aead()
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	if len(raw) < gcm.NonceSize() {
		return "", errors.Join(ErrDecryptionFailed, ErrCiphertextTooShort)
	}
	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}

func (v *Vault) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
