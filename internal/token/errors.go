package token

import "errors"

var (
	ErrMissingSigningKey = errors.New("token: missing signing key")
	ErrExpired           = errors.New("token: expired")
	ErrMalformed         = errors.New("token: malformed or invalid signature")
)
