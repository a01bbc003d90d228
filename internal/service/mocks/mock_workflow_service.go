package mocks

import (
	"context"

	"thesisrepo/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Transition(ctx context.Context, documentID string, target model.Status, actorID, reason string) (*model.WorkflowTransition, error) {
	args := m.Called(ctx, documentID, target, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkflowTransition), args.Error(1)
}

func (m *MockWorkflowService) History(ctx context.Context, documentID string) ([]model.WorkflowTransition, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkflowTransition), args.Error(1)
}

func (m *MockWorkflowService) Targets(ctx context.Context, documentID, actorID string) ([]model.Status, error) {
	args := m.Called(ctx, documentID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Status), args.Error(1)
}
