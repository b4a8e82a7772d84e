package session

import (
	"errors"
	"testing"
	"time"
)

func TestGate_SignInSignOut(t *testing.T) {
	gate := NewGate()

	if err := gate.Require(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Require() before sign-in = %v, want ErrNoSession", err)
	}

	if err := gate.SignIn(Session{UserID: "user-1", Email: "a@b.c"}); err != nil {
		t.Fatalf("SignIn() = %v", err)
	}
	id, err := gate.UserID()
	if err != nil || id != "user-1" {
		t.Errorf("UserID() = (%q, %v), want (user-1, nil)", id, err)
	}

	gate.SignOut()
	if _, err := gate.UserID(); !errors.Is(err, ErrNoSession) {
		t.Errorf("UserID() after sign-out = %v, want ErrNoSession", err)
	}
}

func TestGate_SignInRequiresUserID(t *testing.T) {
	gate := NewGate()
	if err := gate.SignIn(Session{}); !errors.Is(err, ErrNoSession) {
		t.Errorf("SignIn(empty) = %v, want ErrNoSession", err)
	}
}

func TestGate_Listeners(t *testing.T) {
	gate := NewGate()

	var events []bool
	var lastUser string
	gate.OnChange(func(s Session, active bool) {
		events = append(events, active)
		lastUser = s.UserID
	})

	if err := gate.SignIn(Session{UserID: "user-1"}); err != nil {
		t.Fatalf("SignIn() = %v", err)
	}
	gate.SignOut()
	gate.SignOut() // already signed out, no second notification

	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("events = %v, want [true false]", events)
	}
	if lastUser != "" {
		t.Errorf("sign-out must deliver the zero session, got user %q", lastUser)
	}
}

func TestFromAccessToken(t *testing.T) {
	const secret = "test-secret"

	token, err := NewAccessToken(Session{UserID: "user-1", Email: "a@b.c"}, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken() = %v", err)
	}

	s, err := FromAccessToken(token, secret)
	if err != nil {
		t.Fatalf("FromAccessToken() = %v", err)
	}
	if s.UserID != "user-1" || s.Email != "a@b.c" {
		t.Errorf("session = %+v", s)
	}
	if s.ExpiresAt.Before(time.Now()) {
		t.Error("ExpiresAt must be in the future")
	}
}

func TestFromAccessToken_Invalid(t *testing.T) {
	const secret = "test-secret"

	expired, err := NewAccessToken(Session{UserID: "user-1"}, secret, -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken() = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"wrong secret", mustToken(t, "other-secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromAccessToken(tt.token, secret); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("FromAccessToken() = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func mustToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := NewAccessToken(Session{UserID: "user-1"}, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken() = %v", err)
	}
	return token
}
