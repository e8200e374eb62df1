package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/and161185/medhub/internal/model"
	"github.com/and161185/medhub/internal/store"
)

// DefaultLoginDelay is the simulated round trip of MockAuthenticator.
const DefaultLoginDelay = time.Second

var _ store.Authenticator = (*MockAuthenticator)(nil)

// MockAuthenticator accepts any non-empty credentials after a short delay
// and returns the demo profile bound to the given email.
type MockAuthenticator struct {
	Delay  time.Duration
	tokens tokenIssuer
}

// NewMockAuthenticator constructs a demo authenticator. Tokens it issues
// verify with ParseAccessToken and signKey.
func NewMockAuthenticator(delay time.Duration, signKey []byte, ttl time.Duration) *MockAuthenticator {
	return &MockAuthenticator{Delay: delay, tokens: tokenIssuer{signKey: signKey, ttl: ttl, now: time.Now}}
}

// DemoUser is the profile every mock login resolves to.
func DemoUser(email string) model.User {
	return model.User{
		ID:          "1",
		Name:        "Sarah Johnson",
		Email:       email,
		Phone:       "+234 801 234 5678",
		Avatar:      "https://i.pravatar.cc/150?img=47",
		DateOfBirth: "1990-05-15",
		Gender:      model.GenderFemale,
		BloodType:   "O+",
		Allergies:   []string{"Penicillin", "Peanuts"},
	}
}

// Authenticate waits for Delay, then returns the demo session.
func (m *MockAuthenticator) Authenticate(ctx context.Context, email, password string) (model.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return model.Session{}, errors.New("empty email/password")
	}
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return model.Session{}, ctx.Err()
		}
	}
	u := DemoUser(email)
	tok, exp, err := m.tokens.issue(u.ID)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{User: u, AccessToken: tok, ExpiresAt: exp}, nil
}
