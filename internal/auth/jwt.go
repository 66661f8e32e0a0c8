// Package auth provides JWT sessions, the GitHub OAuth flow, and password
// hashing for the katas API.
//
// The login flow: /auth/github/login redirects to GitHub; the callback
// exchanges the code for a profile, upserts the user, and sets a signed JWT
// in an HttpOnly cookie. Subsequent requests carry the cookie; middleware
// validates it and puts the user ID in the request context. Stateless — no
// session store, the signed token is the session.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer distinguishes our tokens from any other app sharing the
// secret by accident.
const tokenIssuer = "rust-katas"

// TokenTTL is the access-token lifetime. Short on purpose: no refresh
// tokens yet, users just re-authenticate through GitHub.
const TokenTTL = 30 * time.Minute

// TokenService signs and verifies JWT access tokens with an HMAC secret.
// The same secret does both, so it must stay server-side.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least 32
// bytes of randomness in production (openssl rand -hex 32); we reject
// anything under 16 outright.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Generate creates a signed HS256 token for userID, stored in the standard
// "sub" claim, valid for TokenTTL.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, TokenTTL)
}

// GenerateWithDuration creates a token with a custom lifetime. Tests use
// this to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies a token string and returns the user ID it carries.
//
// Pinning the accepted methods to HS256 blocks algorithm-confusion attacks
// (a token claiming alg "none" or an RSA variant is rejected before the
// signature is even checked).
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", errors.New("auth: invalid token claims")
	}
	if c.Subject == "" {
		return "", errors.New("auth: token has no subject")
	}

	return c.Subject, nil
}
