package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"thesisrepo/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var userTestColumns = []string{"id", "name", "email", "role", "program", "department", "id_number", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	now := time.Now().UTC()

	u := &model.User{
		ID:        "user-uuid",
		Name:      "Juan Dela Cruz",
		Email:     "jdc@university.edu",
		Role:      model.RoleStudent,
		Program:   "BS Computer Science",
		IDNumber:  "2022-00123",
		CreatedAt: now,
	}

	rows := sqlmock.NewRows(userTestColumns).
		AddRow(u.ID, u.Name, u.Email, "student", u.Program, u.Department, u.IDNumber, u.CreatedAt)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.ID, u.Name, u.Email, "student", u.Program, u.Department, u.IDNumber, u.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(context.Background(), u)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, model.RoleStudent, result.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userTestColumns).
			AddRow("user-1", "Maria Santos", "ms@university.edu", "librarian", "", "Library Services", "", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("user-1").
			WillReturnRows(rows)

		u, err := repo.FindByID(ctx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, model.RoleLibrarian, u.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, u)
	})
}
