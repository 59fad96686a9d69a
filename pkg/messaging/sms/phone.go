package sms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const DEFAULT_PHONE_REGION = "CR"

var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// NormalizePhoneNumber parses raw with defaultRegion for numbers without a country prefix
// and returns it in E.164 format.
func NormalizePhoneNumber(raw string, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhoneNumber
	}
	if defaultRegion == "" {
		defaultRegion = DEFAULT_PHONE_REGION
	}

	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhoneNumber, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhoneNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
