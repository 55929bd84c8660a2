package repository

import (
	"context"

	"docvault/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and the uploader's sharing edge in
	// a single transaction, so a document is never visible without its
	// uploader edge.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// Update applies a partial metadata patch and refreshes updated_at.
	// Returns the stored document after the update.
	Update(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error)

	// ListAccessible returns a paginated list of documents reachable through a
	// sharing edge for the given account, newest first, with a total count.
	ListAccessible(ctx context.Context, accountID string, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document row and all its sharing edges in one
	// transaction. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
