package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("auth: invalid credentials")
	ErrAccountDisabled        = errors.New("auth: account disabled")
	ErrAccountLocked          = errors.New("auth: account temporarily locked")
	ErrInvalidTokenScope      = errors.New("auth: invalid token scope")
	ErrTwoFactorNotConfigured = errors.New("auth: two-factor authentication not set up")
	ErrInvalidOTP             = errors.New("auth: invalid one-time code")
	ErrUnauthorized           = errors.New("auth: unauthorized")
	ErrWeakPassword           = errors.New("auth: password does not meet minimum length")
	ErrInternal               = errors.New("auth: internal error")
)
