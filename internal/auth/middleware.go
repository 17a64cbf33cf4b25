package auth

import (
	"context"
	"net/http"

	"github.com/openipo/admin-backend/internal/admin"
)

type contextKey int

const accountContextKey contextKey = iota

// AccountFromContext returns the authenticated account stored by
// RequireFullAccess.
func AccountFromContext(ctx context.Context) (*admin.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*admin.Account)
	return account, ok
}

// RequireFullAccess guards routes that need a verified second factor. It
// resolves the session cookie to an active account and rejects anything
// else, including pre-2FA tokens presented as session cookies.
func (h *Handler) RequireFullAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := h.sessionCookie(r)
		if raw == "" {
			writeError(w, ErrUnauthorized)
			return
		}

		account, err := h.svc.Authenticate(r.Context(), raw)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
