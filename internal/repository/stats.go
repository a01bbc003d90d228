package repository

import (
	"context"

	"thesisrepo/internal/model"
)

// StatsRepository serves the read-side dashboard projections.
// Counts are snapshot reads; they are not transactionally consistent with
// concurrent transitions.
type StatsRepository interface {
	// CountByStatus groups documents by status, optionally narrowed by filter.
	CountByStatus(ctx context.Context, f ListFilter) (map[model.Status]int, error)

	// CountByProgram groups all documents by program.
	CountByProgram(ctx context.Context) (map[string]int, error)
}
