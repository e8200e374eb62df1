// Package memory contains in-process implementations of repository interfaces.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/and161185/medhub/internal/errs"
	"github.com/and161185/medhub/internal/model"
	"github.com/and161185/medhub/internal/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements UserRepository over a map keyed by lower-cased email.
type UserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]model.Account
}

// NewUserRepo constructs an empty user repository.
func NewUserRepo() *UserRepo { return &UserRepo{byEmail: map[string]model.Account{}} }

func emailKey(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func cloneAccount(a model.Account) model.Account {
	a.User = a.User.Clone()
	a.PwdHash = slices.Clone(a.PwdHash)
	a.Salt = slices.Clone(a.Salt)
	return a
}

// Create inserts a new account.
func (r *UserRepo) Create(ctx context.Context, a *model.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := emailKey(a.User.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[k]; exists {
		return errs.ErrAlreadyExists
	}
	r.byEmail[k] = cloneAccount(*a)
	return nil
}

// GetByEmail returns a copy of the stored account.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := cloneAccount(a)
	return &c, nil
}
