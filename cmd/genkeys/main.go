// Command genkeys prints fresh random keys for a new deployment's
// environment: the AES-256 key that encrypts TOTP secrets at rest and an
// HMAC key for session token signing.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/openipo/admin-backend/pkg/vault"
)

func main() {
	encryptionKey, err := vault.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate encryption key: %v\n", err)
		os.Exit(1)
	}

	signingKey := make([]byte, 48)
	if _, err := rand.Read(signingKey); err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate signing key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("TOTP_ENCRYPTION_KEY=%s\n", encryptionKey)
	fmt.Printf("JWT_SECRET=%s\n", base64.StdEncoding.EncodeToString(signingKey))
}
