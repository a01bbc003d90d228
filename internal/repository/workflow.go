package repository

import (
	"context"

	"thesisrepo/internal/model"
)

// WorkflowRepository persists validated status transitions.
type WorkflowRepository interface {
	// ApplyTransition updates the document's status and appends the history
	// entry in one transaction. The status update is conditioned on the
	// document still being in t.FromStatus; if another transition got there
	// first, nothing is written and ErrStaleStatus is returned.
	ApplyTransition(ctx context.Context, t *model.WorkflowTransition) error
}

// HistoryRepository reads the append-only transition log.
type HistoryRepository interface {
	// ListForDocument returns every transition recorded for a document,
	// newest first.
	ListForDocument(ctx context.Context, documentID string) ([]model.WorkflowTransition, error)
}
