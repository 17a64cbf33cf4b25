package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openipo/admin-backend/internal/admin"
	"github.com/openipo/admin-backend/internal/token"
	"github.com/openipo/admin-backend/pkg/qrcode"
	"github.com/openipo/admin-backend/pkg/totp"
	"github.com/openipo/admin-backend/pkg/vault"
)

// Audit actions emitted by the state machine.
const (
	ActionLoginStep1Success = "LOGIN_STEP1_SUCCESS"
	ActionLoginFailed       = "LOGIN_FAILED"
	ActionLoginSuccess      = "LOGIN_SUCCESS"
	ActionTwoFactorFailed   = "2FA_FAILED"
	ActionSetupInit         = "2FA_SETUP_INIT"
	ActionSetupComplete     = "2FA_SETUP_COMPLETE"
	ActionLogout            = "LOGOUT"
	ActionPasswordChange    = "PASSWORD_CHANGE"
)

// minPasswordLength is the floor applied on password change.
const minPasswordLength = 8

// Step tells the client where the login flow goes after the password check.
type Step string

const (
	StepSetupTwoFactor  Step = "setup_2fa"
	StepVerifyTwoFactor Step = "verify_2fa"
)

// RequestMeta carries the per-request audit context.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// LoginResult is the outcome of the password step.
type LoginResult struct {
	Step      Step
	TempToken string
}

// SetupResult is the outcome of 2FA setup initiation. Secret is returned so
// the administrator can type it manually when QR scanning is not an option.
type SetupResult struct {
	Secret          string
	ProvisioningURI string
	QRCode          string
}

// ConfirmResult is the outcome of 2FA setup confirmation. BackupCodes are the
// plaintexts, shown exactly once and never persisted.
type ConfirmResult struct {
	BackupCodes  []string
	SessionToken string
}

// VerifyResult is the outcome of recurring 2FA verification.
type VerifyResult struct {
	SessionToken string
	Method       string // "otp" or "backup_code"
}

// Service is the authentication state machine. It is the only component with
// cross-cutting control flow; everything it calls is single-purpose.
type Service struct {
	store  admin.Store
	sink   admin.Sink
	vault  *vault.Vault
	tokens *token.Service
	log    *slog.Logger
	cfg    Config

	bcryptCost int
	now        func() time.Time
}

// ServiceOption customizes Service construction.
type ServiceOption func(*Service)

// WithBcryptCost overrides the bcrypt cost used for new password hashes.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the state machine. A nil logger falls back to
// slog.Default.
func NewService(cfg Config, store admin.Store, sink admin.Sink, v *vault.Vault, tokens *token.Service, log *slog.Logger, opts ...ServiceOption) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		store:      store,
		sink:       sink,
		vault:      v,
		tokens:     tokens,
		log:        log,
		cfg:        cfg,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login is step one: email and password. On success it issues a pre-2FA
// token and tells the client whether to set up or verify the second factor.
// Failures never reveal whether the email is registered.
func (s *Service) Login(ctx context.Context, email, password string, meta RequestMeta) (*LoginResult, error) {
	account, err := s.store.FindByEmail(ctx, admin.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, s.internal("find account by email", err)
	}

	// Disabled accounts fail before the password is even looked at, so a
	// disabled response carries no information about credential validity.
	if !account.IsActive {
		return nil, ErrAccountDisabled
	}

	now := s.now()
	if account.Locked(now) {
		s.sink.Record(ctx, admin.Event{
			AdminID:   account.ID.Hex(),
			Action:    ActionLoginFailed,
			IP:        meta.IP,
			UserAgent: meta.UserAgent,
			Meta:      map[string]any{"reason": "account_locked"},
		})
		return nil, ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.registerFailedAttempt(ctx, account, meta)
		return nil, ErrInvalidCredentials
	}

	tempToken, err := s.tokens.Issue(account.ID.Hex(), token.ScopePreTwoFactor, s.cfg.TempTokenTTL)
	if err != nil {
		return nil, s.internal("issue pre-2fa token", err)
	}

	step := StepVerifyTwoFactor
	if !account.TwoFactorEnabled {
		step = StepSetupTwoFactor
	}

	s.sink.Record(ctx, admin.Event{
		AdminID:   account.ID.Hex(),
		Action:    ActionLoginStep1Success,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Meta:      map[string]any{"step": string(step)},
	})

	return &LoginResult{Step: step, TempToken: tempToken}, nil
}

func (s *Service) registerFailedAttempt(ctx context.Context, account *admin.Account, meta RequestMeta) {
	id := account.ID.Hex()
	eventMeta := map[string]any{}

	count, err := s.store.IncrementFailedLogins(ctx, id)
	if err != nil {
		s.log.Warn("failed to increment login failure counter",
			slog.String("admin_id", id), slog.Any("error", err))
	} else if s.cfg.MaxFailedLogins > 0 && count >= s.cfg.MaxFailedLogins {
		until := s.now().Add(s.cfg.LockDuration)
		if err := s.store.Lock(ctx, id, until); err != nil {
			s.log.Warn("failed to lock account",
				slog.String("admin_id", id), slog.Any("error", err))
		} else {
			eventMeta["locked_until"] = until
		}
	}

	s.sink.Record(ctx, admin.Event{
		AdminID:   id,
		Action:    ActionLoginFailed,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Meta:      eventMeta,
	})
}

// BeginTwoFactorSetup generates a fresh secret, stores it encrypted without
// activating it, and returns the provisioning material. Any prior
// unconfirmed secret is overwritten.
func (s *Service) BeginTwoFactorSetup(ctx context.Context, adminID string, meta RequestMeta) (*SetupResult, error) {
	account, err := s.findAccount(ctx, adminID)
	if err != nil {
		return nil, err
	}

	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return nil, s.internal("generate totp secret", err)
	}

	uri, err := totp.URI(totp.URIParams{
		Secret:      secret,
		AccountName: account.Email,
		Issuer:      s.cfg.Issuer,
	})
	if err != nil {
		return nil, s.internal("build provisioning uri", err)
	}

	ciphertext, err := s.vault.Encrypt(secret)
	if err != nil {
		return nil, s.internal("encrypt totp secret", err)
	}
	if err := s.store.SetPendingSecret(ctx, adminID, ciphertext); err != nil {
		return nil, s.internal("store pending secret", err)
	}

	qr, err := qrcode.DataURL(uri, 0)
	if err != nil {
		return nil, s.internal("render provisioning qr code", err)
	}

	s.sink.Record(ctx, admin.Event{
		AdminID:   adminID,
		Action:    ActionSetupInit,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})

	return &SetupResult{Secret: secret, ProvisioningURI: uri, QRCode: qr}, nil
}

// ConfirmTwoFactorSetup activates 2FA once the administrator proves they hold
// the secret. It returns the backup code plaintexts exactly once and logs
// the caller in.
func (s *Service) ConfirmTwoFactorSetup(ctx context.Context, adminID, code string, meta RequestMeta) (*ConfirmResult, error) {
	account, err := s.findAccount(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if account.TwoFactorSecretEncrypted == "" {
		return nil, ErrTwoFactorNotConfigured
	}

	secret, err := s.vault.Decrypt(account.TwoFactorSecretEncrypted)
	if err != nil {
		return nil, s.internal("decrypt totp secret", err)
	}

	if !s.checkOTP(secret, code) {
		return nil, ErrInvalidOTP
	}

	codes, hashes, err := totp.GenerateBackupCodes(s.cfg.BackupCodeCount)
	if err != nil {
		return nil, s.internal("generate backup codes", err)
	}

	now := s.now()
	if err := s.store.EnableTwoFactor(ctx, adminID, now, hashes, meta.IP); err != nil {
		return nil, s.internal("enable two-factor", err)
	}

	sessionToken, err := s.tokens.Issue(adminID, token.ScopeFullAccess, s.cfg.SessionTTL)
	if err != nil {
		return nil, s.internal("issue session token", err)
	}

	s.sink.Record(ctx, admin.Event{
		AdminID:   adminID,
		Action:    ActionSetupComplete,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})

	return &ConfirmResult{BackupCodes: codes, SessionToken: sessionToken}, nil
}

// VerifyTwoFactor is step two of a recurring login: a pre-2FA token plus an
// OTP code, with single-use backup codes as the fallback path.
func (s *Service) VerifyTwoFactor(ctx context.Context, tempToken, code string, meta RequestMeta) (*VerifyResult, error) {
	claims, err := s.tokens.Verify(tempToken)
	if err != nil {
		return nil, err
	}
	if claims.Scope != token.ScopePreTwoFactor {
		return nil, ErrInvalidTokenScope
	}

	account, err := s.findAccount(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if !account.TwoFactorEnabled || account.TwoFactorSecretEncrypted == "" {
		return nil, ErrTwoFactorNotConfigured
	}

	secret, err := s.vault.Decrypt(account.TwoFactorSecretEncrypted)
	if err != nil {
		return nil, s.internal("decrypt totp secret", err)
	}

	adminID := account.ID.Hex()
	method := "otp"
	ok := s.checkOTP(secret, code)
	if !ok {
		// The OTP did not match; the code may be a backup code. Consumption
		// is a conditional update, so a concurrent request presenting the
		// same code cannot also succeed.
		if hash := totp.MatchBackupCode(code, account.BackupCodeHashes); hash != "" {
			consumed, err := s.store.ConsumeBackupCode(ctx, adminID, hash)
			if err != nil {
				return nil, s.internal("consume backup code", err)
			}
			if consumed {
				ok = true
				method = "backup_code"
			}
		}
	}

	if !ok {
		s.sink.Record(ctx, admin.Event{
			AdminID:   adminID,
			Action:    ActionTwoFactorFailed,
			IP:        meta.IP,
			UserAgent: meta.UserAgent,
		})
		return nil, ErrInvalidOTP
	}

	if err := s.store.RecordLogin(ctx, adminID, meta.IP, s.now()); err != nil {
		return nil, s.internal("record login", err)
	}

	sessionToken, err := s.tokens.Issue(adminID, token.ScopeFullAccess, s.cfg.SessionTTL)
	if err != nil {
		return nil, s.internal("issue session token", err)
	}

	s.sink.Record(ctx, admin.Event{
		AdminID:   adminID,
		Action:    ActionLoginSuccess,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Meta:      map[string]any{"method": method},
	})

	return &VerifyResult{SessionToken: sessionToken, Method: method}, nil
}

// Authenticate resolves a full-access session token to an active account.
// Used by the middleware guarding protected routes.
func (s *Service) Authenticate(ctx context.Context, sessionToken string) (*admin.Account, error) {
	claims, err := s.tokens.Verify(sessionToken)
	if err != nil {
		return nil, err
	}
	if claims.Scope != token.ScopeFullAccess {
		return nil, ErrInvalidTokenScope
	}
	return s.findAccount(ctx, claims.Subject)
}

// SetupSubject resolves the caller of a 2FA setup or confirmation request.
// A valid full-access session wins (an administrator re-configuring 2FA);
// otherwise a pre-2FA token from the forced first-time setup flow is
// accepted.
func (s *Service) SetupSubject(ctx context.Context, sessionToken, tempToken string) (string, error) {
	if sessionToken != "" {
		if account, err := s.Authenticate(ctx, sessionToken); err == nil {
			return account.ID.Hex(), nil
		}
	}

	if tempToken == "" {
		return "", ErrUnauthorized
	}
	claims, err := s.tokens.Verify(tempToken)
	if err != nil {
		return "", err
	}
	if claims.Scope != token.ScopePreTwoFactor {
		return "", ErrInvalidTokenScope
	}

	account, err := s.findAccount(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	return account.ID.Hex(), nil
}

// Logout audits the event when the caller held a valid session. The token
// itself is stateless; invalidation is the transport discarding the cookie.
func (s *Service) Logout(ctx context.Context, sessionToken string, meta RequestMeta) {
	if sessionToken == "" {
		return
	}
	account, err := s.Authenticate(ctx, sessionToken)
	if err != nil {
		return
	}
	s.sink.Record(ctx, admin.Event{
		AdminID:   account.ID.Hex(),
		Action:    ActionLogout,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
}

// ChangePassword replaces the password hash after re-verifying the current
// password. 2FA state is untouched.
func (s *Service) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string, meta RequestMeta) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	account, err := s.findAccount(ctx, adminID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return s.internal("hash new password", err)
	}
	if err := s.store.UpdatePassword(ctx, adminID, string(hash), s.now()); err != nil {
		return s.internal("update password", err)
	}

	s.sink.Record(ctx, admin.Event{
		AdminID:   adminID,
		Action:    ActionPasswordChange,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
	return nil
}

// checkOTP validates an OTP candidate. Format defects count as a mismatch:
// the caller may be holding a backup code instead.
func (s *Service) checkOTP(secret, code string) bool {
	ok, err := totp.Validate(secret, code)
	return err == nil && ok
}

// findAccount loads an account and enforces the active flag. Unknown IDs map
// to ErrUnauthorized: by the time an ID reaches this service it came from a
// signed token, so a miss means a stale or deleted account, not a bad guess.
func (s *Service) findAccount(ctx context.Context, adminID string) (*admin.Account, error) {
	account, err := s.store.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, s.internal("find account by id", err)
	}
	if !account.IsActive {
		return nil, ErrAccountDisabled
	}
	return account, nil
}

func (s *Service) internal(op string, err error) error {
	s.log.Error("auth: "+op, slog.Any("error", err))
	return errors.Join(ErrInternal, err)
}
