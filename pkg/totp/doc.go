// Package totp implements time-based one-time passwords (RFC 6238) and the
// single-use backup codes that substitute for them during account recovery.
//
// The package is pure computation: validating a code is a function of the
// code, the shared secret, and the clock. Nothing here touches storage, so
// concurrency control around backup-code consumption belongs to the caller.
//
// Secrets are 160-bit random values encoded as unpadded Base32
// (GenerateSecretKey), compatible with Google Authenticator, 1Password and
// friends via the otpauth:// URI built by URI.
//
// Validation tolerates clock drift by accepting codes from adjacent time
// steps: Validate checks one step either side of now, ValidateWithSkew makes
// the window configurable. Candidate codes are compared with
// crypto/subtle.ConstantTimeCompare so a partial prefix match leaks no timing
// signal.
//
// Backup codes are high-entropy hex strings hashed with bcrypt before
// storage; see GenerateBackupCodes and MatchBackupCode.
package totp
