package auth

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// Routes returns the authentication router, mounted by the server under
// /api/admin/auth. The credential-accepting endpoints sit behind a per-IP
// rate limit as a brute-force brake.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if h.cfg.LoginRatePerMin > 0 {
			r.Use(httprate.LimitByIP(h.cfg.LoginRatePerMin, time.Minute))
		}
		r.Post("/login", h.Login)
		r.Post("/verify-2fa", h.VerifyTwoFactor)
	})

	r.Post("/logout", h.Logout)
	r.Post("/2fa/setup", h.SetupTwoFactor)
	r.Post("/2fa/confirm", h.ConfirmTwoFactor)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireFullAccess)
		r.Get("/me", h.Me)
		r.Put("/password", h.ChangePassword)
	})

	return r
}
