package model

import "fmt"

// Status is a document's position in the publication workflow.
type Status string

const (
	StatusPending             Status = "pending"
	StatusUnderReview         Status = "under_review"
	StatusNeedsRevision       Status = "needs_revision"
	StatusApproved            Status = "approved"
	StatusCuration            Status = "curation"
	StatusReadyForPublication Status = "ready_for_publication"
	StatusPublished           Status = "published"
	StatusRejected            Status = "rejected"
)

// Statuses lists every workflow status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusUnderReview,
	StatusNeedsRevision,
	StatusApproved,
	StatusCuration,
	StatusReadyForPublication,
	StatusPublished,
	StatusRejected,
}

var validStatuses = func() map[Status]bool {
	m := make(map[Status]bool, len(Statuses))
	for _, s := range Statuses {
		m[s] = true
	}
	return m
}()

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	return validStatuses[s]
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}
