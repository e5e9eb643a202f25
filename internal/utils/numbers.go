package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const accountNumberPrefix = "ACC"

// GenerateAccountNumber returns a candidate account number: "ACC" followed by
// nine cryptographically random digits. The generator is not collision-free;
// the store's unique constraint is the real guard and callers retry on
// conflict.
func GenerateAccountNumber() (string, error) {
	digits, err := randomDigits(9)
	if err != nil {
		return "", err
	}
	return accountNumberPrefix + digits, nil
}

// GenerateReference returns a ledger entry reference: prefix + UTC timestamp
// to the second + four random digits, e.g. TRF202601021504059371. Collisions
// are detected by the unique-reference constraint, not prevented here.
func GenerateReference(prefix string) (string, error) {
	digits, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	return prefix + time.Now().UTC().Format("20060102150405") + digits, nil
}

// randomDigits generates length decimal digits from crypto/rand.
func randomDigits(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	var sb strings.Builder
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for _, b := range buf {
		sb.WriteByte('0' + b%10)
	}
	return sb.String(), nil
}
