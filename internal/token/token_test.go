package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openipo/admin-backend/internal/token"
)

func newService(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.New("test-signing-key-at-least-32-bytes!", "openipo-admin")
	require.NoError(t, err)
	return svc
}

func TestNewRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := token.New("", "openipo-admin")
	assert.ErrorIs(t, err, token.ErrMissingSigningKey)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	for _, scope := range []token.Scope{token.ScopePreTwoFactor, token.ScopeFullAccess} {
		raw, err := svc.Issue("6862f9a0c1d2e3f405060708", scope, time.Hour)
		require.NoError(t, err)

		claims, err := svc.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, "6862f9a0c1d2e3f405060708", claims.Subject)
		assert.Equal(t, scope, claims.Scope)
		assert.Equal(t, "openipo-admin", claims.Issuer)
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	raw, err := svc.Issue("id", token.ScopeFullAccess, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "garbage", raw: "not.a.jwt"},
		{name: "truncated", raw: func() string {
			raw, err := svc.Issue("id", token.ScopeFullAccess, time.Hour)
			require.NoError(t, err)
			return raw[:len(raw)-6]
		}()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Verify(tt.raw)
			assert.ErrorIs(t, err, token.ErrMalformed)
		})
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	other, err := token.New("a-completely-different-signing-key!!", "openipo-admin")
	require.NoError(t, err)

	raw, err := other.Issue("id", token.ScopeFullAccess, time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, token.ErrMalformed)
}
