package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const codeCharSet = "0123456789"

const maxDistinctCodeAttempts = 10

// GenerateOTPCode generates a uniformly random numeric code of the given length, zero-padded
func GenerateOTPCode(length int) (string, error) {
	buffer := make([]byte, length)
	max := big.NewInt(int64(len(codeCharSet)))
	for i := range buffer {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buffer[i] = codeCharSet[n.Int64()]
	}
	return string(buffer), nil
}

// GenerateDistinctOTPCode generates a code that differs from previous
func GenerateDistinctOTPCode(length int, previous string) (string, error) {
	for i := 0; i < maxDistinctCodeAttempts; i++ {
		code, err := GenerateOTPCode(length)
		if err != nil {
			return "", err
		}
		if code != previous {
			return code, nil
		}
	}
	return "", errors.New("could not generate a distinct code")
}
