package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openipo/admin-backend/internal/token"
)

// errorBody is the stable error envelope. Message is always caller-safe.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a service failure to a status and a stable code. Anything
// outside the taxonomy becomes internal_error with no detail leakage; the
// detail was already logged where it happened.
func writeError(w http.ResponseWriter, err error) {
	status, code, message := http.StatusInternalServerError, "internal_error", "Something went wrong"

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		status, code, message = http.StatusUnauthorized, "invalid_credentials", "Invalid credentials"
	case errors.Is(err, ErrAccountDisabled):
		status, code, message = http.StatusForbidden, "account_disabled", "Account disabled"
	case errors.Is(err, ErrAccountLocked):
		status, code, message = http.StatusForbidden, "account_locked", "Account temporarily locked, try again later"
	case errors.Is(err, token.ErrExpired):
		status, code, message = http.StatusUnauthorized, "token_expired", "Session expired"
	case errors.Is(err, token.ErrMalformed):
		status, code, message = http.StatusUnauthorized, "token_malformed", "Not authorized, token failed"
	case errors.Is(err, ErrInvalidTokenScope):
		status, code, message = http.StatusUnauthorized, "invalid_token_scope", "Invalid token scope"
	case errors.Is(err, ErrTwoFactorNotConfigured):
		status, code, message = http.StatusBadRequest, "two_factor_not_configured", "2FA not set up"
	case errors.Is(err, ErrInvalidOTP):
		status, code, message = http.StatusUnauthorized, "invalid_otp", "Invalid OTP code"
	case errors.Is(err, ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "unauthorized", "Not authorized"
	case errors.Is(err, ErrWeakPassword):
		status, code, message = http.StatusUnprocessableEntity, "weak_password", "Password must be at least 8 characters"
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "bad_request", Message: message}})
}
