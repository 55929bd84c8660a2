package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

// allowedExtensions are the upload file types the vault accepts.
var allowedExtensions = map[string]struct{}{
	".txt": {}, ".pdf": {}, ".png": {}, ".jpg": {}, ".jpeg": {},
	".gif": {}, ".doc": {}, ".docx": {}, ".zip": {},
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// UploadInput carries the metadata and content stream for a new document.
// Filename is used only to pick the storage-key extension and as the
// suggested download name; the storage key itself is always generated.
type UploadInput struct {
	Title       string
	Description string
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DocumentService defines the use cases for handling documents. Every method
// takes the acting account's ID and enforces the access rules via Decide;
// handlers only resolve the session and translate errors.
type DocumentService interface {
	// Upload writes the blob first, then the metadata record plus the
	// uploader's sharing edge; a failed metadata write deletes the orphaned
	// blob before returning.
	Upload(ctx context.Context, uploaderID string, in UploadInput) (*model.Document, error)

	// Get returns document metadata to an account holding a sharing edge.
	Get(ctx context.Context, accountID, id string) (*model.Document, error)

	// Download streams the document bytes to an account holding a sharing edge.
	Download(ctx context.Context, accountID, id string) (io.ReadCloser, *model.Document, error)

	// Update applies a partial metadata patch for an account holding a sharing edge.
	Update(ctx context.Context, accountID, id string, patch model.DocumentPatch) (*model.Document, error)

	// Delete removes blob, record and edges. Uploader only.
	Delete(ctx context.Context, accountID, id string) error

	// ListAccessible returns the documents the account can reach, paginated.
	ListAccessible(ctx context.Context, accountID string, limit, offset int) (*DocumentListResult, error)

	// Share grants the grantee a sharing edge; idempotent.
	Share(ctx context.Context, accountID, id, granteeID string) error

	// Revoke removes the grantee's sharing edge; idempotent.
	Revoke(ctx context.Context, accountID, id, granteeID string) error

	// ShareURL returns a time-limited presigned download link.
	ShareURL(ctx context.Context, accountID, id string) (string, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store       storage.BlobStore
	docs        repository.DocumentRepository
	shares      repository.ShareRepository
	accounts    repository.AccountRepository
	shareExpiry time.Duration
	tracer      trace.Tracer
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.BlobStore, docs repository.DocumentRepository, shares repository.ShareRepository, accounts repository.AccountRepository, shareExpiry time.Duration) DocumentService {
	return &documentService{
		store:       store,
		docs:        docs,
		shares:      shares,
		accounts:    accounts,
		shareExpiry: shareExpiry,
		tracer:      otel.Tracer("docvault/internal/service"),
	}
}

// authorize loads the document and applies the access decision for the
// action. Existence is resolved first, so a missing document is ErrNotFound
// regardless of who asks; only then is the sharing edge consulted.
func (s *documentService) authorize(ctx context.Context, accountID, id string, action Action) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	hasEdge := false
	if action != ActionDelete {
		// Delete is decided on uploader identity alone; skip the edge lookup.
		hasEdge, err = s.shares.HasEdge(ctx, accountID, id)
		if err != nil {
			return nil, err
		}
	}
	if err := Decide(doc, hasEdge, accountID, action); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Upload(ctx context.Context, uploaderID string, in UploadInput) (*model.Document, error) {
	ctx, span := s.tracer.Start(ctx, "DocumentService.Upload")
	defer span.End()

	if in.Reader == nil {
		return nil, fmt.Errorf("%w: file content is required", ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: file type %q not allowed", ErrValidation, ext)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Storage key is UUID-derived; user filenames never reach the backend.
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	// Blob first, metadata second. The reverse ordering could commit a record
	// pointing at content that was never written.
	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w: %v", ErrStorageFailure, err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Filename:    filepath.Base(in.Filename),
		StorageKey:  objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
		UploaderID:  uploaderID,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Compensating action: the blob is orphaned and must go before the
		// error propagates.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %w: %v; rollback delete failed: %v", ErrStorageFailure, err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w: %v", ErrStorageFailure, err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, accountID, id string) (*model.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	return s.authorize(ctx, accountID, id, ActionRead)
}

func (s *documentService) Download(ctx context.Context, accountID, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.authorize(ctx, accountID, id, ActionRead)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StorageKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrBlobMissing, doc.StorageKey)
		}
		return nil, nil, fmt.Errorf("fetch from storage: %w: %v", ErrStorageFailure, err)
	}
	return rc, doc, nil
}

func (s *documentService) Update(ctx context.Context, accountID, id string, patch model.DocumentPatch) (*model.Document, error) {
	if _, err := s.authorize(ctx, accountID, id, ActionUpdate); err != nil {
		return nil, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	doc, err := s.docs.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, accountID, id string) error {
	ctx, span := s.tracer.Start(ctx, "DocumentService.Delete")
	defer span.End()

	doc, err := s.authorize(ctx, accountID, id, ActionDelete)
	if err != nil {
		return err
	}
	// Blob first, confirmed, then record and edges in one transaction. An
	// already-missing blob counts as confirmed so retries stay idempotent.
	if err := s.store.Delete(ctx, doc.StorageKey); err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("delete blob: %w: %v", ErrStorageFailure, err)
	}
	return s.docs.Delete(ctx, id)
}

// ListAccessible returns paginated documents without exposing repository types.
func (s *documentService) ListAccessible(ctx context.Context, accountID string, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.ListAccessible(ctx, accountID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Share(ctx context.Context, accountID, id, granteeID string) error {
	if _, err := s.authorize(ctx, accountID, id, ActionShare); err != nil {
		return err
	}
	// The edge table's foreign key would reject an unknown grantee anyway;
	// checking here turns that into a clean not-found outcome.
	if _, err := s.accounts.FindByID(ctx, granteeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: account %s", ErrNotFound, granteeID)
		}
		return err
	}
	return s.shares.Grant(ctx, granteeID, id)
}

func (s *documentService) Revoke(ctx context.Context, accountID, id, granteeID string) error {
	if _, err := s.authorize(ctx, accountID, id, ActionShare); err != nil {
		return err
	}
	return s.shares.Revoke(ctx, granteeID, id)
}

func (s *documentService) ShareURL(ctx context.Context, accountID, id string) (string, error) {
	doc, err := s.authorize(ctx, accountID, id, ActionRead)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, doc.StorageKey, s.shareExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w: %v", ErrStorageFailure, err)
	}
	return u, nil
}
