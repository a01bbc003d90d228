package service

import (
	"context"

	"thesisrepo/internal/model"
	"thesisrepo/internal/repository"
)

// StatsScope narrows the aggregation. Zero value means all documents;
// OwnerID and Program are mutually exclusive narrowing options.
type StatsScope struct {
	OwnerID string
	Program string
}

// StatusCounts is the dashboard projection: document counts per status and,
// for the unscoped view, per program.
type StatusCounts struct {
	Total     int                  `json:"total"`
	ByStatus  map[model.Status]int `json:"by_status"`
	ByProgram map[string]int       `json:"by_program,omitempty"`
}

// StatsService computes dashboard counts on demand. Results are snapshot
// reads over the document collection, recomputed per call, and may lag
// concurrent transitions.
type StatsService interface {
	Compute(ctx context.Context, scope StatsScope) (*StatusCounts, error)
}

type statsService struct {
	repo repository.StatsRepository
}

// NewStatsService constructs a new StatsService.
func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) Compute(ctx context.Context, scope StatsScope) (*StatusCounts, error) {
	byStatus, err := s.repo.CountByStatus(ctx, repository.ListFilter{
		OwnerID: scope.OwnerID,
		Program: scope.Program,
	})
	if err != nil {
		return nil, err
	}

	out := &StatusCounts{ByStatus: byStatus}
	for _, n := range byStatus {
		out.Total += n
	}

	// Program breakdown only makes sense for the unscoped view.
	if scope.OwnerID == "" && scope.Program == "" {
		byProgram, err := s.repo.CountByProgram(ctx)
		if err != nil {
			return nil, err
		}
		out.ByProgram = byProgram
	}
	return out, nil
}
