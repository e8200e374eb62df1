package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/and161185/medhub/internal/errs"
	"github.com/and161185/medhub/internal/limiter"
	"github.com/and161185/medhub/internal/model"
	"github.com/and161185/medhub/internal/repository"
	"github.com/and161185/medhub/internal/repository/memory"
	"go.uber.org/zap/zaptest"
)

type fakeUsers struct {
	byEmail map[string]*model.Account

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, a *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*model.Account{}
	}
	k := strings.ToLower(a.User.Email)
	if _, exists := f.byEmail[k]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *a
	f.byEmail[k] = &cpy
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *a
	return &c, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	successErr error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string) error {
	l.successCalls++
	return l.successErr
}
func (l *fakeLimiter) Failure(context.Context, string) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

func TestAuth_Register_Basics(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{}
	s := NewAuthService(users, []byte("k"), time.Minute, &fakeLimiter{}, zaptest.NewLogger(t))

	if _, err := s.Register(context.Background(), model.User{Name: "Ada", Email: "ada@example.com"}, ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty password, got %v", err)
	}
	if _, err := s.Register(context.Background(), model.User{Name: "Ada", Email: "not-an-email"}, "pwd"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on bad email, got %v", err)
	}

	id, err := s.Register(context.Background(), model.User{Name: "Ada", Email: "ada@example.com"}, "pwd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == "" {
		t.Fatalf("empty user id")
	}
	stored := users.byEmail["ada@example.com"]
	if stored == nil || len(stored.PwdHash) == 0 || len(stored.Salt) == 0 {
		t.Fatalf("password must be stored hashed: %+v", stored)
	}

	if _, err := s.Register(context.Background(), model.User{Name: "Ada", Email: "ada@example.com"}, "pwd2"); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists on duplicate email, got %v", err)
	}

	users.createErr = errors.New("boom")
	if _, err := s.Register(context.Background(), model.User{Name: "Bob", Email: "bob@example.com"}, "pwd"); err == nil {
		t.Fatalf("want propagated repo error")
	}
}

func TestAuth_Authenticate_RateLimiterAndCreds(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{}
	lim := &fakeLimiter{allowOK: true}
	s := NewAuthService(users, []byte("secret"), 2*time.Minute, lim, zaptest.NewLogger(t))
	uid, err := s.Register(context.Background(), model.User{Name: "Ada", Email: "ada@example.com"}, "correct")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	lim.allowErr = errors.New("lim-err")
	if _, err := s.Authenticate(context.Background(), "ada@example.com", "correct"); err == nil {
		t.Fatalf("want limiter error propagate")
	}
	lim.allowErr = nil

	lim.allowOK = false
	if _, err := s.Authenticate(context.Background(), "ada@example.com", "correct"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited, got %v", err)
	}
	lim.allowOK = true

	if _, err := s.Authenticate(context.Background(), "nope@example.com", "x"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized on missing user, got %v", err)
	}

	lim.failBlocked = true
	if _, err := s.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited on blocked after failure, got %v", err)
	}

	lim.failBlocked = false
	if _, err := s.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized on wrong password, got %v", err)
	}

	sess, err := s.Authenticate(context.Background(), "ada@example.com", "correct")
	if err != nil {
		t.Fatalf("Authenticate success: %v", err)
	}
	if sess.AccessToken == "" || sess.ExpiresAt.Before(time.Now()) {
		t.Fatalf("bad token: %+v", sess)
	}
	if sess.User.ID != uid || sess.User.Email != "ada@example.com" {
		t.Fatalf("bad user returned: %+v", sess.User)
	}
	if lim.successCalls == 0 {
		t.Fatalf("expected Success() to be called")
	}
	sub, err := ParseAccessToken(sess.AccessToken, []byte("secret"))
	if err != nil || sub != uid {
		t.Fatalf("token subject=%q err=%v, want %q", sub, err, uid)
	}
}

func TestAuth_Authenticate_CanceledLookup(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{getErr: context.Canceled}
	lim := &fakeLimiter{allowOK: true}
	s := NewAuthService(users, []byte("k"), time.Minute, lim, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Authenticate(ctx, "ada@example.com", "pw"); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if lim.failureCalls != 0 {
		t.Fatalf("canceled lookup must not count as a failed attempt")
	}
}

func TestAuth_WithMemoryBackends_LocksOut(t *testing.T) {
	t.Parallel()

	s := NewAuthService(memory.NewUserRepo(), []byte("k"), time.Minute, limiter.NewMemory(time.Minute, 3, time.Hour), nil)
	if _, err := s.Register(context.Background(), model.User{Name: "Ada", Email: "ada@example.com"}, "right"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := s.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("attempt %d: want ErrUnauthorized, got %v", i+1, err)
		}
	}
	if _, err := s.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("third failure must lock out, got %v", err)
	}
	if _, err := s.Authenticate(context.Background(), "ada@example.com", "right"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("correct password during lockout must be refused, got %v", err)
	}
}
