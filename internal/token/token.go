package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scope restricts which operations a session token authorizes.
type Scope string

const (
	// ScopePreTwoFactor is issued after password verification alone and
	// authorizes only 2FA setup and verification.
	ScopePreTwoFactor Scope = "pre_2fa"
	// ScopeFullAccess is issued after the second factor has been verified.
	ScopeFullAccess Scope = "full_access"
)

// Claims are the payload of a session token.
type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens with a single HMAC key.
type Service struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

// New creates a token service. The signing key must be non-empty; its absence
// is a deployment misconfiguration the process should not survive.
func New(signingKey, issuer string) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}, nil
}

// Issue signs a token for subjectID with the given scope and time to live.
func (s *Service) Issue(subjectID string, scope Scope, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Verify parses and validates raw. Expired tokens fail with ErrExpired; any
// other defect (bad signature, wrong algorithm, garbage input) fails with
// ErrMalformed. Scope enforcement is the caller's responsibility.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, errors.Join(ErrMalformed, err)
	}
	return claims, nil
}
