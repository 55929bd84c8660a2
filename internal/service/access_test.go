package service

import (
	"testing"

	"docvault/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	doc := &model.Document{ID: "doc-1", UploaderID: "uploader"}

	tests := []struct {
		name      string
		doc       *model.Document
		hasEdge   bool
		accountID string
		action    Action
		wantErr   error
	}{
		{
			name:      "grantee may read",
			doc:       doc,
			hasEdge:   true,
			accountID: "grantee",
			action:    ActionRead,
			wantErr:   nil,
		},
		{
			name:      "grantee may update",
			doc:       doc,
			hasEdge:   true,
			accountID: "grantee",
			action:    ActionUpdate,
			wantErr:   nil,
		},
		{
			name:      "grantee may share",
			doc:       doc,
			hasEdge:   true,
			accountID: "grantee",
			action:    ActionShare,
			wantErr:   nil,
		},
		{
			name:      "no edge no read",
			doc:       doc,
			hasEdge:   false,
			accountID: "stranger",
			action:    ActionRead,
			wantErr:   ErrForbidden,
		},
		{
			name:      "uploader without edge cannot read",
			doc:       doc,
			hasEdge:   false,
			accountID: "uploader",
			action:    ActionRead,
			wantErr:   ErrForbidden,
		},
		{
			name:      "uploader may delete regardless of edge",
			doc:       doc,
			hasEdge:   false,
			accountID: "uploader",
			action:    ActionDelete,
			wantErr:   nil,
		},
		{
			name:      "grantee with edge may not delete",
			doc:       doc,
			hasEdge:   true,
			accountID: "grantee",
			action:    ActionDelete,
			wantErr:   ErrForbidden,
		},
		{
			name:      "unknown action denied",
			doc:       doc,
			hasEdge:   true,
			accountID: "uploader",
			action:    Action("export"),
			wantErr:   ErrForbidden,
		},
		{
			name:      "missing document is not found",
			doc:       nil,
			hasEdge:   true,
			accountID: "uploader",
			action:    ActionRead,
			wantErr:   ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decide(tt.doc, tt.hasEdge, tt.accountID, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
