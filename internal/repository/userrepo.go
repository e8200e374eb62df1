// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/medhub/internal/model"
)

// UserRepository provides access to registered accounts.
type UserRepository interface {
	// Create inserts a new account; the email must be unused.
	Create(ctx context.Context, a *model.Account) error
	// GetByEmail loads an account by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}
