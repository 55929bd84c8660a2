package model

import "time"

// Document represents a stored file in the vault.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// Filename is the original client-supplied name, kept only as the suggested
// download name. StorageKey is the opaque object-store locator; it is derived
// from a generated UUID, never from user input. UploaderID is immutable after
// creation and is the sole basis for delete rights.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	StorageKey  string    `json:"-"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UploaderID  string    `json:"uploader_id"`
}

// DocumentPatch is a partial metadata update. Nil fields are left unchanged.
type DocumentPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
