package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/quantonganh/codebinge"
)

const issuer = "codebinge"

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{
		secret: []byte(secret),
	}
}

// Issue creates a signed token for email that expires after ttl.
func (s *Sessions) Issue(email string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("session secret is not configured")
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses tokenString and returns the identity it asserts.
func (s *Sessions) Verify(tokenString string) (*codebinge.Identity, error) {
	if len(s.secret) == 0 || tokenString == "" {
		return nil, codebinge.ErrAccessDenied
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, &codebinge.Error{Code: codebinge.ErrUnauthorized, Message: "Unauthorized", Err: err}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, codebinge.ErrAccessDenied
	}

	return &codebinge.Identity{Email: claims.Email}, nil
}
