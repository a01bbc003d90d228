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
)

var ErrInvalidUser = errors.New("invalid user")

// CreateUserInput carries the fields for registering an account.
type CreateUserInput struct {
	Name       string
	Email      string
	Role       model.Role
	Program    string
	Department string
	IDNumber   string
}

// UserService defines the account use cases.
type UserService interface {
	// Create registers a new account. The actor must hold canManageUsers.
	Create(ctx context.Context, actorID string, in CreateUserInput) (*model.User, error)

	// Get returns a user by ID.
	Get(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, actorID string, in CreateUserInput) (*model.User, error) {
	if actorID == "" {
		return nil, ErrIDRequired
	}
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}
	if !permission.HasCapability(actor.Role, permission.CanManageUsers) {
		return nil, fmt.Errorf("%w: role %s lacks %s", ErrPermissionDenied, actor.Role, permission.CanManageUsers)
	}

	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUser)
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrInvalidUser)
	case !in.Role.Valid():
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, string(in.Role))
	}

	u := &model.User{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		Program:    in.Program,
		Department: in.Department,
		IDNumber:   in.IDNumber,
		CreatedAt:  time.Now().UTC(),
	}
	return s.repo.Create(ctx, u)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
