package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// Digits is the code length. Six digits is the RFC 6238 default and what
	// every mainstream authenticator app produces.
	Digits = 6
	// Period is the validity window of a single code in seconds.
	Period = 30
	// DefaultSkew is the number of adjacent time steps accepted on either
	// side of the current one to absorb clock drift.
	DefaultSkew = 1

	secretBytes = 20 // 160-bit secret per RFC 4226 recommendation
)

var (
	// secretKeyRegex matches unpadded or padded Base32: uppercase A-Z, digits 2-7.
	secretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")
	codeRegex      = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, Digits))

	base32Encoding = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// URIParams describes an otpauth:// provisioning URI.
type URIParams struct {
	Secret      string // Base32-encoded secret (required)
	AccountName string // user identifier, usually an email (required)
	Issuer      string // service name shown in authenticator apps (required)
}

// GenerateSecretKey returns a new Base32-encoded 160-bit secret.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrSecretGenerationFailed, err)
	}
	return base32Encoding.EncodeToString(secret), nil
}

// URI builds a provisioning URI following the Key Uri Format used by
// authenticator apps:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func URI(params URIParams) (string, error) {
	switch {
	case params.Secret == "":
		return "", ErrMissingSecret
	case !secretKeyRegex.MatchString(params.Secret):
		return "", ErrInvalidSecret
	case params.AccountName == "":
		return "", ErrMissingAccountName
	case params.Issuer == "":
		return "", ErrMissingIssuer
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", params.Secret)
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", fmt.Sprintf("%d", Digits))
	query.Set("period", fmt.Sprintf("%d", Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// Validate reports whether the code is valid for the secret at the current
// time, accepting DefaultSkew adjacent steps on either side.
func Validate(secret, code string) (bool, error) {
	return ValidateWithSkew(secret, code, DefaultSkew, time.Now())
}

// ValidateWithSkew reports whether the code is valid for the secret at time t,
// accepting skew adjacent time steps on either side of t's step. The
// comparison is constant-time on the raw code value.
func ValidateWithSkew(secret, code string, skew int, t time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCode
	}
	if skew < 0 {
		skew = 0
	}

	counter := t.Unix() / Period
	match := false
	for i := -skew; i <= skew; i++ {
		candidate := fmt.Sprintf("%0*d", Digits, hotp(key, counter+int64(i)))
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(code)) == 1 {
			match = true
		}
	}
	return match, nil
}

// Generate returns the code for the current time step. Mostly useful for
// setup confirmation flows and tests.
func Generate(secret string) (string, error) {
	return GenerateAt(secret, time.Now())
}

// GenerateAt returns the code for the time step containing t.
func GenerateAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", Digits, hotp(key, t.Unix()/Period)), nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if !secretKeyRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := base32Encoding.DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements the RFC 4226 HMAC-based one-time password algorithm with
// HMAC-SHA1 and dynamic truncation.
func hotp(key []byte, counter int64) int {
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(buf)
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]&0xff) << 16) |
		(int(sum[offset+2]&0xff) << 8) |
		int(sum[offset+3]&0xff)

	return code % int(math.Pow10(Digits))
}
