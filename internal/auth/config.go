package auth

import "time"

// Config holds the authentication core's settings. SigningKey and
// EncryptionKey have no defaults on purpose: a process without them must not
// start.
type Config struct {
	SigningKey    string `env:"JWT_SECRET,required"`
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY,required"` // base64, 32 bytes decoded
	Issuer        string `env:"TOTP_ISSUER" envDefault:"OpenIPO Admin"`

	TempTokenTTL time.Duration `env:"AUTH_TEMP_TOKEN_TTL" envDefault:"5m"`
	SessionTTL   time.Duration `env:"AUTH_SESSION_TTL" envDefault:"12h"`

	CookieName    string `env:"AUTH_COOKIE_NAME" envDefault:"admin_token"`
	SecureCookies bool   `env:"AUTH_SECURE_COOKIES" envDefault:"false"`

	MaxFailedLogins int           `env:"AUTH_MAX_FAILED_LOGINS" envDefault:"10"`
	LockDuration    time.Duration `env:"AUTH_LOCK_DURATION" envDefault:"15m"`

	BackupCodeCount int `env:"AUTH_BACKUP_CODE_COUNT" envDefault:"10"`
	LoginRatePerMin int `env:"AUTH_LOGIN_RATE_PER_MINUTE" envDefault:"10"`
}
