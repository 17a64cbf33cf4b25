package admin

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role distinguishes ordinary admins from super admins.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Account is a snapshot of one administrator record. Sensitive fields are
// excluded from JSON so the struct can be returned by /me directly.
type Account struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"`
	Role         Role          `bson:"role" json:"role"`
	IsActive     bool          `bson:"isActive" json:"isActive"`

	TwoFactorEnabled         bool       `bson:"twoFactorEnabled" json:"twoFactorEnabled"`
	TwoFactorSecretEncrypted string     `bson:"twoFactorSecretEncrypted,omitempty" json:"-"`
	BackupCodeHashes         []string   `bson:"twoFactorBackupCodes,omitempty" json:"-"`
	TwoFactorVerifiedAt      *time.Time `bson:"twoFactorVerifiedAt,omitempty" json:"twoFactorVerifiedAt,omitempty"`

	FailedLoginCount  int        `bson:"failedLoginCount" json:"-"`
	LockUntil         *time.Time `bson:"lockUntil,omitempty" json:"-"`
	LastLoginAt       *time.Time `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	LastLoginIP       string     `bson:"lastLoginIp,omitempty" json:"-"`
	PasswordChangedAt *time.Time `bson:"passwordChangedAt,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Locked reports whether the account is inside a lockout window at now.
func (a *Account) Locked(now time.Time) bool {
	return a.LockUntil != nil && now.Before(*a.LockUntil)
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
