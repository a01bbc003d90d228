package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"thesisrepo/internal/model"
	"thesisrepo/internal/permission"
	"thesisrepo/internal/repository"
	"thesisrepo/internal/workflow"
)

var (
	ErrActorNotFound      = errors.New("actor not found")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTransitionConflict = errors.New("document status changed concurrently")
)

// WorkflowService drives the document status lifecycle. Every status change
// goes through Transition; documents are never updated directly.
type WorkflowService interface {
	// Transition validates and applies a status change on behalf of an actor.
	//
	// Fails with ErrNotFound / ErrActorNotFound when a reference is missing,
	// ErrInvalidTransition when the registry has no such edge,
	// ErrPermissionDenied when the actor's capabilities don't satisfy the
	// edge's rule, and ErrTransitionConflict when a concurrent transition
	// moved the document first. On any failure nothing is persisted.
	Transition(ctx context.Context, documentID string, target model.Status, actorID, reason string) (*model.WorkflowTransition, error)

	// History returns the document's transition log, newest first.
	History(ctx context.Context, documentID string) ([]model.WorkflowTransition, error)

	// Targets returns the statuses the actor may move the document to from
	// its current status, for driving UI actions.
	Targets(ctx context.Context, documentID, actorID string) ([]model.Status, error)
}

type workflowService struct {
	docs    repository.DocumentRepository
	users   repository.UserRepository
	wf      repository.WorkflowRepository
	history repository.HistoryRepository
}

// NewWorkflowService constructs a new WorkflowService.
func NewWorkflowService(docs repository.DocumentRepository, users repository.UserRepository, wf repository.WorkflowRepository, history repository.HistoryRepository) WorkflowService {
	return &workflowService{docs: docs, users: users, wf: wf, history: history}
}

func (s *workflowService) Transition(ctx context.Context, documentID string, target model.Status, actorID, reason string) (*model.WorkflowTransition, error) {
	if documentID == "" || actorID == "" {
		return nil, ErrIDRequired
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, string(target))
	}

	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load document: %w", err)
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}

	rule, ok := workflow.Lookup(doc.Status, target)
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, doc.Status, target)
	}

	caps := permission.Resolve(actor.Role)
	if !rule.Allowed(caps, doc.OwnerID == actor.ID) {
		return nil, fmt.Errorf("%w: role %s cannot move %s to %s", ErrPermissionDenied, actor.Role, doc.Status, target)
	}

	from := doc.Status
	entry := &model.WorkflowTransition{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		FromStatus: &from,
		ToStatus:   target,
		ActorID:    actor.ID,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.wf.ApplyTransition(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrTransitionConflict
		}
		return nil, fmt.Errorf("apply transition: %w", err)
	}
	return entry, nil
}

func (s *workflowService) History(ctx context.Context, documentID string) ([]model.WorkflowTransition, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load document: %w", err)
	}
	return s.history.ListForDocument(ctx, documentID)
}

func (s *workflowService) Targets(ctx context.Context, documentID, actorID string) ([]model.Status, error) {
	if documentID == "" || actorID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load document: %w", err)
	}
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}

	caps := permission.Resolve(actor.Role)
	isOwner := doc.OwnerID == actor.ID
	targets := make([]model.Status, 0)
	for _, to := range workflow.TargetsFrom(doc.Status) {
		rule, _ := workflow.Lookup(doc.Status, to)
		if rule.Allowed(caps, isOwner) {
			targets = append(targets, to)
		}
	}
	return targets, nil
}
