package repository

import "context"

// ShareRepository defines data access for the sharing relation between
// accounts and documents. An edge grants read/update access; delete rights
// stay with the uploader and never pass through edges.
type ShareRepository interface {
	// Grant inserts an edge. Granting an existing edge is a no-op; the
	// composite primary key plus ON CONFLICT DO NOTHING make the operation
	// idempotent under concurrency.
	Grant(ctx context.Context, accountID, documentID string) error

	// Revoke removes an edge. Revoking an absent edge is a no-op.
	Revoke(ctx context.Context, accountID, documentID string) error

	// HasEdge reports whether the (account, document) edge exists.
	HasEdge(ctx context.Context, accountID, documentID string) (bool, error)
}
