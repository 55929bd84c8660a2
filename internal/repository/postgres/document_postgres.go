package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = "id, title, description, filename, storage_key, size, content_type, created_at, updated_at, uploader_id"

// Create inserts a new document row together with the uploader's sharing
// edge. Both happen in one transaction so the document is never observable
// without an edge for its uploader.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qDoc = `
		INSERT INTO documents (id, title, description, filename, storage_key, size, content_type, created_at, updated_at, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns
	row := tx.QueryRowContext(ctx, qDoc,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.Filename,
		doc.StorageKey,
		doc.Size,
		doc.ContentType,
		doc.CreatedAt,
		doc.UpdatedAt,
		doc.UploaderID,
	)
	var out model.Document
	if err := scanDocument(row, &out); err != nil {
		return nil, err
	}

	const qEdge = `
		INSERT INTO account_documents (account_id, document_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, document_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, qEdge, doc.UploaderID, doc.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	var d model.Document
	if err := scanDocument(r.db.QueryRowContext(ctx, q, id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Update applies a partial patch; nil patch fields keep the current value via
// COALESCE. updated_at is always refreshed by the database clock.
func (r *DocumentPostgres) Update(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q, id, patch.Title, patch.Description)
	var d model.Document
	if err := scanDocument(row, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAccessible returns documents reachable through a sharing edge for the
// account, newest first, using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) ListAccessible(ctx context.Context, accountID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `
		SELECT COUNT(*)
		FROM documents d
		JOIN account_documents ad ON ad.document_id = d.id
		WHERE ad.account_id = $1
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, accountID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT d.id, d.title, d.description, d.filename, d.storage_key, d.size, d.content_type, d.created_at, d.updated_at, d.uploader_id
		FROM documents d
		JOIN account_documents ad ON ad.document_id = d.id
		WHERE ad.account_id = $1
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, accountID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.Description,
			&d.Filename,
			&d.StorageKey,
			&d.Size,
			&d.ContentType,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.UploaderID,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a document row and all its sharing edges in one transaction.
// It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM account_documents WHERE document_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func scanDocument(row *sql.Row, d *model.Document) error {
	return row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.Filename,
		&d.StorageKey,
		&d.Size,
		&d.ContentType,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.UploaderID,
	)
}
