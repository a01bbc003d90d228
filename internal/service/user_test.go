package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"thesisrepo/internal/model"
	repoMocks "thesisrepo/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testAdminID = "admin-1"

func validCreateUserInput() CreateUserInput {
	return CreateUserInput{
		Name:     "Juan Dela Cruz",
		Email:    "jdc@university.edu",
		Role:     model.RoleStudent,
		Program:  "BS Computer Science",
		IDNumber: "2022-00123",
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actorID    string
		in         CreateUserInput
		setupMocks func(mRepo *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:    "happy path",
			actorID: testAdminID,
			in:      validCreateUserInput(),
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, testAdminID).Return(userWithRole(testAdminID, model.RoleAdmin), nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.ID != "" && u.Role == model.RoleStudent && u.Email == "jdc@university.edu"
				})).Return(&model.User{ID: "gen-id", Role: model.RoleStudent}, nil)
			},
		},
		{
			name:       "missing actor id",
			actorID:    "",
			in:         validCreateUserInput(),
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:    "unknown actor",
			actorID: "ghost",
			in:      validCreateUserInput(),
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrActorNotFound,
		},
		{
			name:    "librarian lacks canManageUsers",
			actorID: "lib-1",
			in:      validCreateUserInput(),
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, "lib-1").Return(userWithRole("lib-1", model.RoleLibrarian), nil)
			},
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "validation - missing name",
			actorID: testAdminID,
			in: func() CreateUserInput {
				in := validCreateUserInput()
				in.Name = ""
				return in
			}(),
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, testAdminID).Return(userWithRole(testAdminID, model.RoleAdmin), nil)
			},
			wantErr: ErrInvalidUser,
		},
		{
			name:    "validation - unknown role",
			actorID: testAdminID,
			in: func() CreateUserInput {
				in := validCreateUserInput()
				in.Role = model.Role("dean")
				return in
			}(),
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, testAdminID).Return(userWithRole(testAdminID, model.RoleAdmin), nil)
			},
			wantErr: ErrInvalidUser,
		},
		{
			name:    "repository error",
			actorID: testAdminID,
			in:      validCreateUserInput(),
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, testAdminID).Return(userWithRole(testAdminID, model.RoleAdmin), nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			tt.setupMocks(mRepo)

			u, err := NewUserService(mRepo).Create(ctx, tt.actorID, tt.in)

			if tt.wantErr != nil {
				switch {
				case errors.Is(tt.wantErr, ErrIDRequired),
					errors.Is(tt.wantErr, ErrActorNotFound),
					errors.Is(tt.wantErr, ErrPermissionDenied),
					errors.Is(tt.wantErr, ErrInvalidUser):
					assert.ErrorIs(t, err, tt.wantErr)
				default:
					assert.Error(t, err)
				}
				assert.Nil(t, u)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, u)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "u-1").Return(userWithRole("u-1", model.RoleFaculty), nil)

		u, err := NewUserService(mRepo).Get(ctx, "u-1")
		assert.NoError(t, err)
		assert.Equal(t, model.RoleFaculty, u.Role)
	})

	t.Run("empty id", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)

		u, err := NewUserService(mRepo).Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
		assert.Nil(t, u)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		u, err := NewUserService(mRepo).Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, u)
	})
}
