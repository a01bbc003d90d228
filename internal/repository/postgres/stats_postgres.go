package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"thesisrepo/internal/model"
	"thesisrepo/internal/repository"
)

// StatsPostgres serves dashboard count projections with GROUP BY queries.
type StatsPostgres struct {
	db *sql.DB
}

// NewStatsPostgres creates a new StatsPostgres repository.
func NewStatsPostgres(db *sql.DB) *StatsPostgres {
	return &StatsPostgres{db: db}
}

var _ repository.StatsRepository = (*StatsPostgres)(nil)

// CountByStatus groups documents by status, optionally narrowed by filter.
func (r *StatsPostgres) CountByStatus(ctx context.Context, f repository.ListFilter) (map[model.Status]int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Program != "" {
		args = append(args, f.Program)
		conds = append(conds, fmt.Sprintf("program = $%d", len(args)))
	}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	q := "SELECT status, COUNT(*) FROM documents"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " GROUP BY status"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[model.Status(status)] = n
	}
	return counts, rows.Err()
}

// CountByProgram groups all documents by program.
func (r *StatsPostgres) CountByProgram(ctx context.Context) (map[string]int, error) {
	const q = `SELECT program, COUNT(*) FROM documents GROUP BY program`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			program string
			n       int
		)
		if err := rows.Scan(&program, &n); err != nil {
			return nil, err
		}
		counts[program] = n
	}
	return counts, rows.Err()
}
