// internal/auth/token.go
//
// HS256 session tokens.
//
// Claims
// ------
//   - sub   – user id
//   - role  – one of the Role* constants
//   - email – optional, display only
//   - iss, iat, exp – registered claims; iss and exp are required on verify
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies session tokens.
type TokenService interface {
	Sign(sess Session) (string, error)
	Verify(token string) (*Session, error)
}

type claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type hs256Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewHS256Service validates its inputs and returns a TokenService.
func NewHS256Service(secret, issuer string, ttl time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	if issuer == "" {
		return nil, errors.New("session issuer is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be > 0")
	}
	return &hs256Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (h *hs256Service) Sign(sess Session) (string, error) {
	if sess.UserID == "" {
		return "", errors.New("empty user id")
	}
	now := h.now()
	c := claims{
		Role:  sess.Role,
		Email: sess.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    h.issuer,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.secret)
}

func (h *hs256Service) Verify(token string) (*Session, error) {
	var c claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)
	if _, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return h.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("verify session token: %w", err)
	}
	return &Session{UserID: c.Subject, Email: c.Email, Role: c.Role}, nil
}
