package vault

import "errors"

var (
	ErrInvalidKeyLength   = errors.New("vault: key must be exactly 32 bytes")
	ErrEncryptionFailed   = errors.New("vault: failed to encrypt secret")
	ErrDecryptionFailed   = errors.New("vault: failed to decrypt secret")
	ErrCiphertextTooShort = errors.New("vault: ciphertext shorter than nonce")
	ErrInvalidKeyEncoding = errors.New("vault: key is not valid base64")
)
