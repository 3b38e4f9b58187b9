package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec issues and verifies signed, time-bounded bearer tokens.
// Tokens are stateless: the expiry embedded in the token plus the
// process-wide secret fully define their lifecycle, and there is no
// server-side record of issued tokens.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue creates an HS256-signed token for subject, valid from now until
// now+ttl. Subject must be non-empty and ttl positive.
func (c *TokenCodec) Issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// ExtractSubject parses the embedded subject without verifying the
// signature or expiry. Callers use it to look up the candidate principal
// before a full Validate. Returns ErrTokenMalformed when the token does
// not parse into a claims tuple with a subject.
func (c *TokenCodec) ExtractSubject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ErrTokenMalformed
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}

// Validate recomputes the signature over the token's claims and checks
// the subject and expiry against the supplied clock. It returns
// (false, nil) when the signature does not verify or the subject does
// not match expectedSubject, and (false, ErrTokenExpired) when both
// check out but now is at or past the embedded expiry. Expiry is a
// distinct failure mode: a lapsed credential is not a fraudulent one.
func (c *TokenCodec) Validate(token, expectedSubject string, now time.Time) (bool, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false, nil
	}

	if claims.Subject != expectedSubject {
		return false, nil
	}

	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return false, ErrTokenExpired
	}

	return true, nil
}
