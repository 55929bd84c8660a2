package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/repository"
)

// SharePostgres is a PostgreSQL implementation of repository.ShareRepository.
// The composite primary key on (account_id, document_id) makes duplicate
// edges impossible at the storage layer.
type SharePostgres struct {
	db *sql.DB
}

// NewSharePostgres creates a new SharePostgres repository.
func NewSharePostgres(db *sql.DB) *SharePostgres {
	return &SharePostgres{db: db}
}

var _ repository.ShareRepository = (*SharePostgres)(nil)

// Grant inserts an edge; granting an existing edge is a no-op.
func (r *SharePostgres) Grant(ctx context.Context, accountID, documentID string) error {
	const q = `
		INSERT INTO account_documents (account_id, document_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, document_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, accountID, documentID)
	return err
}

// Revoke removes an edge; revoking an absent edge is a no-op.
func (r *SharePostgres) Revoke(ctx context.Context, accountID, documentID string) error {
	const q = `DELETE FROM account_documents WHERE account_id = $1 AND document_id = $2`
	_, err := r.db.ExecContext(ctx, q, accountID, documentID)
	return err
}

// HasEdge reports whether the (account, document) edge exists.
func (r *SharePostgres) HasEdge(ctx context.Context, accountID, documentID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM account_documents WHERE account_id = $1 AND document_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, accountID, documentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
