package model

import "time"

// WorkflowTransition is one immutable entry in a document's audit trail.
// FromStatus is nil only for the record written when the document is created.
// Entries are appended by the workflow engine and never mutated or deleted.
type WorkflowTransition struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	FromStatus *Status   `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
