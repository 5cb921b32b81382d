// Package validation holds input validation rules shared by handlers and services.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 128
	emailMaxLength    = 254
)

// ValidateEmail checks address format and length.
func ValidateEmail(email string) error {
	if len(email) > emailMaxLength {
		return fmt.Errorf("email must be at most %d characters", emailMaxLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	if strings.HasSuffix(email, ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password policy: length bounds plus at
// least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return fmt.Errorf("password must be at least %d characters", passwordMinLength)
	}
	if len(password) > passwordMaxLength {
		return fmt.Errorf("password must be at most %d characters", passwordMaxLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}
