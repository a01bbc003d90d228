package mocks

import (
	"context"

	"thesisrepo/internal/model"
	"thesisrepo/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountByStatus(ctx context.Context, f repository.ListFilter) (map[model.Status]int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.Status]int), args.Error(1)
}

func (m *MockStatsRepository) CountByProgram(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
