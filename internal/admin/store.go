package admin

import (
	"context"
	"time"
)

// Store is the persistence boundary for administrator accounts.
//
// Every method that changes an account is a single conditional update against
// the database rather than a read-modify-write, which is what keeps the
// failure counter and backup code consumption correct under concurrent
// requests.
type Store interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)

	// IncrementFailedLogins adds one to the failure counter and returns the
	// post-increment value so the caller can decide on lockout.
	IncrementFailedLogins(ctx context.Context, id string) (int, error)

	// Lock sets the lockout deadline.
	Lock(ctx context.Context, id string, until time.Time) error

	// RecordLogin stores login metadata, zeroes the failure counter and
	// clears any lockout.
	RecordLogin(ctx context.Context, id, ip string, at time.Time) error

	// SetPendingSecret stores a freshly generated encrypted TOTP secret
	// without activating it; twoFactorEnabled is left untouched.
	SetPendingSecret(ctx context.Context, id, ciphertext string) error

	// EnableTwoFactor activates 2FA in one update: flag, verification time,
	// the full set of backup code hashes, plus login metadata, since setup
	// confirmation doubles as a successful login.
	EnableTwoFactor(ctx context.Context, id string, verifiedAt time.Time, codeHashes []string, ip string) error

	// ConsumeBackupCode removes one hash from the account's set. It reports
	// false when the hash was already gone, which is how a concurrent request
	// that lost the race finds out.
	ConsumeBackupCode(ctx context.Context, id, hash string) (bool, error)

	UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error
}
