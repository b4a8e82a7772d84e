package session

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"plain address", "one@example.test", true},
		{"subdomain", "a.b@mail.example.test", true},
		{"empty", "", false},
		{"missing at", "example.test", false},
		{"missing domain dot", "one@example", false},
		{"whitespace", "one two@example.test", false},
		{"double at", "one@@example.test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid && err != nil {
				t.Errorf("ValidateEmail(%q) = %v, want nil", tt.email, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("ValidateEmail(%q) = %v, want ErrInvalidEmail", tt.email, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("123456"); err != nil {
		t.Errorf("ValidatePassword(6 chars) = %v, want nil", err)
	}
	if err := ValidatePassword("12345"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("ValidatePassword(5 chars) = %v, want ErrPasswordTooShort", err)
	}
	if err := ValidatePassword(""); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("ValidatePassword(empty) = %v, want ErrPasswordTooShort", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	if err := ValidateCredentials("one@example.test", "123456"); err != nil {
		t.Errorf("ValidateCredentials(valid) = %v, want nil", err)
	}
	if err := ValidateCredentials("not-an-email", "123456"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("ValidateCredentials(bad email) = %v, want ErrInvalidEmail", err)
	}
	if err := ValidateCredentials("one@example.test", "123"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("ValidateCredentials(short password) = %v, want ErrPasswordTooShort", err)
	}
}
