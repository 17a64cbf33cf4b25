// Package auth implements the admin login state machine and its HTTP surface.
//
// The flow is two-step. Step one verifies email and password and hands out a
// short-lived pre-2FA token. Step two requires a TOTP code (or a single-use
// backup code) against that token before a full-access session cookie is
// issued. Administrators without 2FA configured are forced through setup
// before they can reach full access; there is no password-only session.
//
// The Service owns all cross-cutting control flow; the vault, TOTP, token and
// store collaborators stay single-purpose. Every externally observable
// failure maps to one of the package sentinels so the HTTP layer can return
// stable statuses without leaking internals, and audit events are emitted
// best-effort on every security-relevant transition.
package auth
