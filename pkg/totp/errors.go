package totp

import "errors"

var (
	ErrInvalidSecret           = errors.New("totp: secret is not valid base32")
	ErrInvalidCode             = errors.New("totp: code is not a 6-digit number")
	ErrMissingSecret           = errors.New("totp: missing secret")
	ErrMissingAccountName      = errors.New("totp: missing account name")
	ErrMissingIssuer           = errors.New("totp: missing issuer")
	ErrSecretGenerationFailed  = errors.New("totp: failed to generate secret key")
	ErrInvalidBackupCodeCount  = errors.New("totp: backup code count must be greater than zero")
	ErrBackupCodeHashingFailed = errors.New("totp: failed to hash backup code")
)
