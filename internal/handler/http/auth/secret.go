package auth

import (
	"fmt"
	"os"
	"strings"
)

// MinSecretLength is the minimum JWT_SECRET length for HS256 signing.
const MinSecretLength = 32

// weakSecrets are placeholder values that must never sign tokens.
var weakSecrets = []string{
	"secret",
	"changeme",
	"password",
	"jwt-secret",
	"your-secret-key",
	"default",
	"test",
}

// LoadSecret reads and validates JWT_SECRET.
func LoadSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if err := ValidateSecret(secret); err != nil {
		return nil, err
	}
	return []byte(secret), nil
}

// ValidateSecret rejects empty, short and placeholder secrets.
func ValidateSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if len(secret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters long (got %d)", MinSecretLength, len(secret))
	}
	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.Contains(lower, weak) && len(strings.ReplaceAll(lower, weak, "")) < MinSecretLength/2 {
			return fmt.Errorf("JWT_SECRET is too weak: it is built from a common placeholder")
		}
	}
	return nil
}
