package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken marks access tokens that do not parse, verify, or carry a
// subject.
var ErrInvalidToken = errors.New("invalid access token")

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// FromAccessToken verifies an HS256 access token issued by the auth
// collaborator and returns the session it encodes. The subject claim is the
// user id; expiry is enforced by the parser.
func FromAccessToken(tokenStr, secret string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	s := Session{UserID: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// NewAccessToken mints a signed token for the given session, used by tests
// and local development.
func NewAccessToken(s Session, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &accessClaims{
		Email: s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
