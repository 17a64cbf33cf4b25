package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/openipo/admin-backend/pkg/clientip"
	"github.com/openipo/admin-backend/pkg/cookie"
)

// Handler exposes the state machine over HTTP.
type Handler struct {
	svc     *Service
	cookies *cookie.Manager
	cfg     Config
	log     *slog.Logger
}

// NewHandler wires the HTTP layer. A nil logger falls back to slog.Default.
func NewHandler(cfg Config, svc *Service, cookies *cookie.Manager, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, cookies: cookies, cfg: cfg, log: log}
}

func (h *Handler) meta(r *http.Request) RequestMeta {
	return RequestMeta{
		IP:        clientip.FromRequest(r),
		UserAgent: r.UserAgent(),
	}
}

func (h *Handler) sessionCookie(r *http.Request) string {
	value, err := h.cookies.Get(r, h.cfg.CookieName)
	if err != nil {
		return ""
	}
	return value
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles step one of the flow: POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeBadRequest(w, "Email and password are required")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password, h.meta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Enter 2FA code"
	if result.Step == StepSetupTwoFactor {
		message = "Please complete 2FA setup"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"step":      result.Step,
		"tempToken": result.TempToken,
		"message":   message,
	})
}

type verifyRequest struct {
	TempToken string `json:"tempToken"`
	Code      string `json:"code"`
}

// VerifyTwoFactor handles step two: POST /verify-2fa. On success the
// full-access token is delivered as an HTTP-only cookie.
func (h *Handler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decode(r, &req); err != nil || req.TempToken == "" || req.Code == "" {
		writeBadRequest(w, "Session token and code are required")
		return
	}

	result, err := h.svc.VerifyTwoFactor(r.Context(), req.TempToken, req.Code, h.meta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	h.cookies.Set(w, h.cfg.CookieName, result.SessionToken, h.cfg.SessionTTL)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged in successfully",
	})
}

type setupRequest struct {
	TempToken string `json:"tempToken"`
}

// SetupTwoFactor handles POST /2fa/setup. The caller is either a logged-in
// administrator re-configuring 2FA (session cookie) or a first-time setup
// forced from step one (tempToken in the body).
func (h *Handler) SetupTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	_ = decode(r, &req) // body is optional when a session cookie is present

	subject, err := h.svc.SetupSubject(r.Context(), h.sessionCookie(r), req.TempToken)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.BeginTwoFactorSetup(r.Context(), subject, h.meta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"secret":          result.Secret,
		"provisioningUri": result.ProvisioningURI,
		"qrCodeUrl":       result.QRCode,
	})
}

type confirmRequest struct {
	TempToken string `json:"tempToken"`
	Code      string `json:"code"`
}

// ConfirmTwoFactor handles POST /2fa/confirm. Success returns the backup
// codes exactly once and sets the session cookie.
func (h *Handler) ConfirmTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decode(r, &req); err != nil || req.Code == "" {
		writeBadRequest(w, "Code is required")
		return
	}

	subject, err := h.svc.SetupSubject(r.Context(), h.sessionCookie(r), req.TempToken)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.ConfirmTwoFactorSetup(r.Context(), subject, req.Code, h.meta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	h.cookies.Set(w, h.cfg.CookieName, result.SessionToken, h.cfg.SessionTTL)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"backupCodes": result.BackupCodes,
		"message":     "2FA enabled. Save these backup codes now; they will not be shown again.",
	})
}

// Logout handles POST /logout. Works with or without a valid session; the
// cookie is cleared either way.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context(), h.sessionCookie(r), h.meta(r))
	h.cookies.Clear(w, h.cfg.CookieName)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

// Me handles GET /me behind RequireFullAccess.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeError(w, ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles PUT /password behind RequireFullAccess.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeError(w, ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := decode(r, &req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		writeBadRequest(w, "Current and new passwords are required")
		return
	}

	if err := h.svc.ChangePassword(r.Context(), account.ID.Hex(), req.CurrentPassword, req.NewPassword, h.meta(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Password updated successfully"})
}
