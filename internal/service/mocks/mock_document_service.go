package mocks

import (
	"context"
	"io"

	"docvault/internal/model"
	"docvault/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, uploaderID string, in service.UploadInput) (*model.Document, error) {
	args := m.Called(ctx, uploaderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, accountID, id string) (*model.Document, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, accountID, id string) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, accountID, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	if args.Get(1) == nil {
		return rc, nil, args.Error(2)
	}
	return rc, args.Get(1).(*model.Document), args.Error(2)
}

func (m *MockDocumentService) Update(ctx context.Context, accountID, id string, patch model.DocumentPatch) (*model.Document, error) {
	args := m.Called(ctx, accountID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, accountID, id string) error {
	args := m.Called(ctx, accountID, id)
	return args.Error(0)
}

func (m *MockDocumentService) ListAccessible(ctx context.Context, accountID string, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) Share(ctx context.Context, accountID, id, granteeID string) error {
	args := m.Called(ctx, accountID, id, granteeID)
	return args.Error(0)
}

func (m *MockDocumentService) Revoke(ctx context.Context, accountID, id, granteeID string) error {
	args := m.Called(ctx, accountID, id, granteeID)
	return args.Error(0)
}

func (m *MockDocumentService) ShareURL(ctx context.Context, accountID, id string) (string, error) {
	args := m.Called(ctx, accountID, id)
	return args.String(0), args.Error(1)
}
