package service

import "docvault/internal/model"

// Action is a document operation subject to access control.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionShare  Action = "share"
)

// Decide is the access-control decision function. It is pure: it owns no
// storage and looks at nothing beyond its arguments.
//
// Rules:
//   - read, update, share: allowed iff the account holds a sharing edge to
//     the document. The uploader goes through the same edge mechanism as any
//     grantee, because an edge is created for the uploader at creation time.
//   - delete: allowed iff the account is the uploader. Edge membership is
//     irrelevant; revoking the uploader's edge never removes delete rights.
//
// Callers must resolve document existence first: an unknown document is
// ErrNotFound before any authorization reasoning, so a denied caller cannot
// distinguish a document that exists from one that does not.
func Decide(doc *model.Document, hasEdge bool, accountID string, action Action) error {
	if doc == nil {
		return ErrNotFound
	}
	switch action {
	case ActionDelete:
		if doc.UploaderID == accountID {
			return nil
		}
		return ErrForbidden
	case ActionRead, ActionUpdate, ActionShare:
		if hasEdge {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}
