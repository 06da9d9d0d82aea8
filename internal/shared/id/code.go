// Package id generates random human-facing identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const digits = "0123456789"

// DefaultCodeLength is the default length for generated ticket codes.
const DefaultCodeLength = 7

// Digits returns a cryptographically random numeric string of the given
// length. The first digit may be zero; codes are identifiers, not numbers.
func Digits(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	result := make([]byte, length)
	base := big.NewInt(int64(len(digits)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		result[i] = digits[num.Int64()]
	}

	return string(result), nil
}
