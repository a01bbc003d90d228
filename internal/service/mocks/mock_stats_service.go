package mocks

import (
	"context"

	"thesisrepo/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Compute(ctx context.Context, scope service.StatsScope) (*service.StatusCounts, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatusCounts), args.Error(1)
}
