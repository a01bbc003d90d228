package postgres

import (
	"context"
	"database/sql"

	"thesisrepo/internal/model"
	"thesisrepo/internal/repository"
)

// WorkflowPostgres persists workflow transitions and serves the history log.
// It implements both repository.WorkflowRepository and repository.HistoryRepository.
type WorkflowPostgres struct {
	db *sql.DB
}

// NewWorkflowPostgres creates a new WorkflowPostgres repository.
func NewWorkflowPostgres(db *sql.DB) *WorkflowPostgres {
	return &WorkflowPostgres{db: db}
}

var (
	_ repository.WorkflowRepository = (*WorkflowPostgres)(nil)
	_ repository.HistoryRepository  = (*WorkflowPostgres)(nil)
)

// ApplyTransition updates the document status and appends the history entry
// atomically. The UPDATE is conditioned on the from-status the caller
// validated against; zero rows affected means a concurrent transition won
// and the whole call rolls back with ErrStaleStatus.
func (r *WorkflowPostgres) ApplyTransition(ctx context.Context, t *model.WorkflowTransition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var from any
	if t.FromStatus != nil {
		from = string(*t.FromStatus)
	}

	const qUpdate = `UPDATE documents SET status = $1 WHERE id = $2 AND status = $3`
	res, err := tx.ExecContext(ctx, qUpdate, string(t.ToStatus), t.DocumentID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStaleStatus
	}

	var reason any
	if t.Reason != "" {
		reason = t.Reason
	}
	const qInsert = `
		INSERT INTO workflow_history (id, document_id, from_status, to_status, actor_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, qInsert,
		t.ID,
		t.DocumentID,
		from,
		string(t.ToStatus),
		t.ActorID,
		reason,
		t.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// ListForDocument returns the transition log for one document, newest first.
// The secondary id sort keeps ordering stable across equal timestamps.
func (r *WorkflowPostgres) ListForDocument(ctx context.Context, documentID string) ([]model.WorkflowTransition, error) {
	const q = `
		SELECT id, document_id, from_status, to_status, actor_id, reason, created_at
		FROM workflow_history
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.WorkflowTransition, 0)
	for rows.Next() {
		var (
			t      model.WorkflowTransition
			from   sql.NullString
			reason sql.NullString
			to     string
		)
		if err := rows.Scan(&t.ID, &t.DocumentID, &from, &to, &t.ActorID, &reason, &t.CreatedAt); err != nil {
			return nil, err
		}
		if from.Valid {
			s := model.Status(from.String)
			t.FromStatus = &s
		}
		t.ToStatus = model.Status(to)
		t.Reason = reason.String
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
