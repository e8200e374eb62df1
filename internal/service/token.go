package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/medhub/internal/errs"
)

// tokenIssuer signs HS256 access tokens.
type tokenIssuer struct {
	signKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// issue creates a signed JWT for the given subject.
func (ti tokenIssuer) issue(subject string) (string, time.Time, error) {
	now := ti.now()
	exp := now.Add(ti.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(ti.signKey)
	return signed, exp, err
}

// ParseAccessToken verifies an access token and returns its subject.
func ParseAccessToken(token string, signKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: %v", errs.ErrUnauthorized, errors.New("empty subject"))
	}
	return claims.Subject, nil
}
