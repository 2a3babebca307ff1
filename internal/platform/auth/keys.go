package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const apiKeyPrefix = "tqr_live_"

// NewAPIKey returns the raw key (shown once), its lookup hash and a display prefix.
func NewAPIKey() (raw, hash, prefix string) {
	raw = apiKeyPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
	return raw, HashAPIKey(raw), raw[:len(apiKeyPrefix)+4] + "..."
}

// HashAPIKey is the stored form of a key. Keys are random, so a fast hash
// is enough for lookup.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func HashAdminKey(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(b), err
}

// CheckAdminKey compares a presented admin secret with the configured bcrypt hash.
// An empty hash disables admin access.
func CheckAdminKey(hash, secret string) bool {
	if hash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
