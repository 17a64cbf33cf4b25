// Package vault provides symmetric encryption for TOTP secrets at rest.
//
// A Vault is constructed with a single 32-byte AES-256 key and encrypts with
// AES-256-GCM. Every call to Encrypt draws a fresh random nonce which is
// prepended to the ciphertext, so decryption needs nothing beyond the
// ciphertext itself. Ciphertexts are base64 (standard encoding) strings,
// suitable for storage in a document field.
//
// Key handling is deliberately strict: New rejects any key that is not
// exactly 32 bytes, which turns a misconfigured deployment into a startup
// failure instead of a runtime one. ParseKey decodes the base64 form used in
// environment configuration and GenerateKey produces a new encoded key for
// provisioning.
//
// Decryption failures of any kind (truncated input, invalid base64, a
// ciphertext produced under a different key) surface as ErrDecryptionFailed
// and never as silently wrong plaintext, because GCM authenticates the
// payload.
package vault
