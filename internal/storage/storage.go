package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

// Package storage contains the blob store abstraction for raw document bytes.
// Objects are addressed only via opaque keys generated by the service layer;
// keys are never derived from user-supplied filenames. Implementations must
// rely on streaming I/O only, never local disk.

// ErrObjectNotFound is returned (possibly wrapped) by Get when the key is
// unknown to the backend.
var ErrObjectNotFound = errors.New("object not found")

// IsNotFound reports whether err means the requested object does not exist.
// It recognizes both the package sentinel and the backend's missing-key
// responses.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrObjectNotFound) {
		return true
	}
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// BlobStore is the contract the vault core requires from byte storage.
//
// Ordering contract: Put must succeed before any document record referencing
// its key is committed. Delete is idempotent and best-effort; a Delete
// failure after the metadata record is already gone is logged and reconciled
// out-of-band, never surfaced to the caller.
type BlobStore interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	// Unknown keys yield an error for which IsNotFound returns true.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
