package session

import (
	"errors"
	"regexp"
)

// PasswordMinLength is the minimum password length the auth collaborator
// accepts.
const PasswordMinLength = 6

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password too short")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the address shape. Malformed addresses are rejected
// before any network call.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks the minimum length.
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateCredentials checks both fields and returns the first problem.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
