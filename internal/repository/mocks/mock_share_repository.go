package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Grant(ctx context.Context, accountID, documentID string) error {
	args := m.Called(ctx, accountID, documentID)
	return args.Error(0)
}

func (m *MockShareRepository) Revoke(ctx context.Context, accountID, documentID string) error {
	args := m.Called(ctx, accountID, documentID)
	return args.Error(0)
}

func (m *MockShareRepository) HasEdge(ctx context.Context, accountID, documentID string) (bool, error) {
	args := m.Called(ctx, accountID, documentID)
	return args.Bool(0), args.Error(1)
}
