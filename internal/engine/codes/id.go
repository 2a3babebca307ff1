package codes

import (
	"errors"
	"math/rand"
	"strings"
)

const (
	idPrefix = "qr_"
	idChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength = 10
)

var ErrIDExhausted = errors.New("failed to generate unique code id")

type IDAvailabilityChecker interface {
	ExistsByID(id string) (bool, error)
}

// GenerateID returns a fresh public id, retrying on collision.
func GenerateID(checker IDAvailabilityChecker) (string, error) {
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		id := idPrefix + randomString(idLength)

		exists, err := checker.ExistsByID(id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func randomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idChars[rand.Intn(len(idChars))]
	}
	return string(b)
}

// IsValidID checks the public id shape before touching the database.
func IsValidID(id string) bool {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok || len(rest) != idLength {
		return false
	}
	for _, c := range rest {
		if !strings.ContainsRune(idChars, c) {
			return false
		}
	}
	return true
}
