package repository

import (
	"context"

	"docvault/internal/model"
)

// AccountRepository defines data access for accounts using SQL queries only.
// No business logic here — strictly persistence operations.
type AccountRepository interface {
	// Create inserts a new account row. Returns ErrDuplicate (wrapped) when
	// the email is already taken; the unique index on lower(email) is the
	// authority, so concurrent signups cannot both succeed.
	Create(ctx context.Context, acc *model.Account) (*model.Account, error)

	// FindByID returns an account by its ID.
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// FindByEmail returns an account by email, matched case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}
