package admin

import "errors"

var (
	ErrNotFound       = errors.New("admin: account not found")
	ErrDuplicateEmail = errors.New("admin: email already registered")
)
