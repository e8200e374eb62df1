// Package service contains application services for authentication and booking.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	pkgcrypto "github.com/and161185/medhub/internal/crypto"
	"github.com/and161185/medhub/internal/errs"
	"github.com/and161185/medhub/internal/limiter"
	"github.com/and161185/medhub/internal/model"
	"github.com/and161185/medhub/internal/repository"
	"github.com/and161185/medhub/internal/store"
)

// AuthService defines registration and credential checks.
type AuthService interface {
	// Register stores a new account with a hashed password and returns its id.
	Register(ctx context.Context, profile model.User, password string) (userID string, err error)
	// Authenticate applies rate limiting and verifies credentials.
	Authenticate(ctx context.Context, email, password string) (model.Session, error)
}

var _ store.Authenticator = (*AuthServiceImpl)(nil)

type AuthServiceImpl struct {
	users  repository.UserRepository
	lim    limiter.Limiter
	tokens tokenIssuer
	log    *zap.Logger
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter, log *zap.Logger) *AuthServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthServiceImpl{
		users:  users,
		lim:    lim,
		tokens: tokenIssuer{signKey: signKey, ttl: accessTTL, now: time.Now},
		log:    log,
	}
}

// Register creates a new account. An empty profile id is filled with a UUIDv4.
func (s *AuthServiceImpl) Register(ctx context.Context, profile model.User, password string) (string, error) {
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.ID == "" {
		uid, err := uuid.NewV4()
		if err != nil {
			return "", err
		}
		profile.ID = uid.String()
	}
	if err := model.ValidateEmail(profile.Email); err != nil {
		return "", err
	}
	if err := model.Validate(profile); err != nil {
		return "", err
	}
	cred, err := pkgcrypto.NewCredential(password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	a := &model.Account{
		User:      profile.Clone(),
		PwdHash:   cred.Hash,
		Salt:      cred.Salt,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, a); err != nil {
		return "", err
	}
	s.log.Info("account registered", zap.String("userID", profile.ID))
	return profile.ID, nil
}

// Authenticate checks credentials with rate limiting by email.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (model.Session, error) {
	allowed, retry, err := s.lim.Allow(ctx, email)
	if err != nil {
		return model.Session{}, err
	}
	if !allowed {
		s.log.Warn("login blocked", zap.String("email", email), zap.Duration("retryAfter", retry))
		return model.Session{}, errs.ErrRateLimited
	}

	a, err := s.users.GetByEmail(ctx, email)
	if err != nil && ctx.Err() != nil {
		return model.Session{}, ctx.Err()
	}
	if err != nil || !(pkgcrypto.Credential{Hash: a.PwdHash, Salt: a.Salt}).Verify(password) {
		// Record failure; if threshold reached, report rate-limited.
		if blocked, _, ferr := s.lim.Failure(ctx, email); ferr == nil && blocked {
			return model.Session{}, errs.ErrRateLimited
		}
		// unknown email and wrong password look the same to the caller
		return model.Session{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email)

	tok, exp, err := s.tokens.issue(a.User.ID)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{User: a.User, AccessToken: tok, ExpiresAt: exp}, nil
}
