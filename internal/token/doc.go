// Package token issues and verifies the scoped session tokens used by the
// admin login flow.
//
// Tokens are HS256 JWTs carrying a scope claim. ScopePreTwoFactor is handed
// out after the password step and authorizes only 2FA setup and verification;
// ScopeFullAccess is issued once the second factor has been presented. The
// service is stateless: expiry and tampering are the only revocation
// mechanisms, there is no server-side token list.
package token
