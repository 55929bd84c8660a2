package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AccountPostgres struct {
	db *sql.DB
}

// NewAccountPostgres creates a new AccountPostgres repository.
func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

const accountColumns = "id, name, email, password_hash, created_at"

// Create inserts a new account row and returns the stored record.
// A unique violation on the email index maps to repository.ErrDuplicate.
func (r *AccountPostgres) Create(ctx context.Context, acc *model.Account) (*model.Account, error) {
	const q = `
		INSERT INTO accounts (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		acc.ID,
		acc.Name,
		acc.Email,
		acc.PasswordHash,
		acc.CreatedAt,
	)
	var out model.Account
	if err := scanAccount(row, &out); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert account: %w", repository.ErrDuplicate)
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single account by its ID.
func (r *AccountPostgres) FindByID(ctx context.Context, id string) (*model.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	var acc model.Account
	if err := scanAccount(r.db.QueryRowContext(ctx, q, id), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// FindByEmail fetches a single account by email, case-insensitively.
func (r *AccountPostgres) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`
	var acc model.Account
	if err := scanAccount(r.db.QueryRowContext(ctx, q, email), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func scanAccount(row *sql.Row, acc *model.Account) error {
	return row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Email,
		&acc.PasswordHash,
		&acc.CreatedAt,
	)
}
