package utils

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]+`)

// GenerateEnvVarName generates a standardized environment variable name from a given string.
// It converts the input to uppercase and replaces any non-alphanumeric characters with underscores.
// Leading and trailing underscores are removed.
func GenerateEnvVarName(input string) string {
	normalized := strings.ToUpper(input)
	normalized = nonAlphanumeric.ReplaceAllString(normalized, "_")
	return strings.Trim(normalized, "_")
}

// GenerateSmtpServerPasswordEnvVarName names the variable overriding the password of one SMTP server.
// Format: SMTP_SERVER_PASSWORD_FOR_{NORMALIZED_HOST}
func GenerateSmtpServerPasswordEnvVarName(host string) string {
	return "SMTP_SERVER_PASSWORD_FOR_" + GenerateEnvVarName(host)
}
