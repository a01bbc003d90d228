package mocks

import (
	"context"

	"thesisrepo/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) ApplyTransition(ctx context.Context, t *model.WorkflowTransition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) ListForDocument(ctx context.Context, documentID string) ([]model.WorkflowTransition, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkflowTransition), args.Error(1)
}
