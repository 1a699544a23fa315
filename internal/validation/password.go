package validation

import (
	"strings"
)

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return errorf("password must be at least 12 characters")
	}

	// bcrypt silently truncates input beyond 72 bytes
	if len(password) > 72 {
		return errorf("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "sunshine",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return errorf("password is too common, please choose a stronger one")
		}
	}

	return nil
}
