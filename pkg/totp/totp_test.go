package totp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openipo/admin-backend/pkg/totp"
)

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Regexp(t, "^[A-Z2-7]+$", secret)

	other, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  totp.URIParams
		want    string
		wantErr error
	}{
		{
			name: "basic",
			params: totp.URIParams{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "admin@openipo.dev",
				Issuer:      "OpenIPO Admin",
			},
			want: "otpauth://totp/OpenIPO%20Admin:admin@openipo.dev?algorithm=SHA1&digits=6&issuer=OpenIPO+Admin&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name:    "missing secret",
			params:  totp.URIParams{AccountName: "a@x.com", Issuer: "X"},
			wantErr: totp.ErrMissingSecret,
		},
		{
			name:    "invalid secret",
			params:  totp.URIParams{Secret: "not-base32!", AccountName: "a@x.com", Issuer: "X"},
			wantErr: totp.ErrInvalidSecret,
		},
		{
			name:    "missing account name",
			params:  totp.URIParams{Secret: "ABCDEFGHIJKLMNOP", Issuer: "X"},
			wantErr: totp.ErrMissingAccountName,
		},
		{
			name:    "missing issuer",
			params:  totp.URIParams{Secret: "ABCDEFGHIJKLMNOP", AccountName: "a@x.com"},
			wantErr: totp.ErrMissingIssuer,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.URI(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	code, err := totp.Generate(secret)
	require.NoError(t, err)

	ok, err := totp.Validate(secret, code)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = totp.Validate(secret, "000000")
	require.NoError(t, err)
	// One in a million false positive; regenerate if you ever hit it.
	if code != "000000" {
		assert.False(t, ok)
	}

	_, err = totp.Validate("not-base32!", code)
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)

	_, err = totp.Validate(secret, "12345")
	assert.ErrorIs(t, err, totp.ErrInvalidCode)

	_, err = totp.Validate(secret, "abcdef")
	assert.ErrorIs(t, err, totp.ErrInvalidCode)
}

func TestValidateWithSkewDriftWindow(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
		skew   int
		want   bool
	}{
		{name: "current step", offset: 0, skew: 1, want: true},
		{name: "previous step", offset: -totp.Period * time.Second, skew: 1, want: true},
		{name: "next step", offset: totp.Period * time.Second, skew: 1, want: true},
		{name: "two steps back outside window", offset: -2 * totp.Period * time.Second, skew: 1, want: false},
		{name: "two steps back with wider window", offset: -2 * totp.Period * time.Second, skew: 2, want: true},
		{name: "zero skew rejects previous step", offset: -totp.Period * time.Second, skew: 0, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, err := totp.GenerateAt(secret, now.Add(tt.offset))
			require.NoError(t, err)

			ok, err := totp.ValidateWithSkew(secret, code, tt.skew, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestGenerateAtIsDeterministic(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first, err := totp.GenerateAt(secret, at)
	require.NoError(t, err)
	second, err := totp.GenerateAt(secret, at.Add(10*time.Second))
	require.NoError(t, err)

	// Same 30-second step, same code.
	assert.Equal(t, first, second)
	assert.Len(t, first, totp.Digits)
}

func TestGenerateAtRFC6238Vector(t *testing.T) {
	t.Parallel()

	// RFC 6238 Appendix B test vector: the 20-byte SHA-1 seed
	// "12345678901234567890" at 1970-01-01T00:00:59Z yields 94287082, which
	// truncates to 287082 at six digits.
	secret := "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	code, err := totp.GenerateAt(secret, time.Unix(59, 0))
	require.NoError(t, err)
	assert.Equal(t, "287082", code)
}
