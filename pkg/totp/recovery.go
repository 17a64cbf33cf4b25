package totp

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BackupCodeCost is the bcrypt cost used for backup code hashes. Backup codes
// carry 64 bits of entropy, so the default cost is enough of a brake on
// offline guessing without making the linear verification scan painful.
const BackupCodeCost = bcrypt.DefaultCost

// GenerateBackupCodes creates count single-use recovery codes. Each code is a
// 16-character uppercase hex string (64 bits of entropy). The first return
// value holds the plaintexts to show the user exactly once, the second the
// bcrypt hashes to persist. Index i of both slices refers to the same code.
func GenerateBackupCodes(count int) (codes []string, hashes []string, err error) {
	if count < 1 {
		return nil, nil, ErrInvalidBackupCodeCount
	}

	codes = make([]string, count)
	hashes = make([]string, count)
	for i := 0; i < count; i++ {
		raw := make([]byte, 8)
		if _, err := rand.Read(raw); err != nil {
			return nil, nil, errors.Join(ErrSecretGenerationFailed, err)
		}
		codes[i] = fmt.Sprintf("%X", raw)

		hash, err := bcrypt.GenerateFromPassword([]byte(codes[i]), BackupCodeCost)
		if err != nil {
			return nil, nil, errors.Join(ErrBackupCodeHashingFailed, err)
		}
		hashes[i] = string(hash)
	}
	return codes, hashes, nil
}

// MatchBackupCode compares the candidate code against every stored hash and
// returns the matched hash, or "" when none matches. The caller is expected
// to remove the returned hash from storage atomically; this function never
// mutates anything.
func MatchBackupCode(code string, hashes []string) string {
	for _, hash := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil {
			return hash
		}
	}
	return ""
}
