package model

import (
	"fmt"
	"time"
)

// Role determines which capabilities a user holds (see internal/permission).
type Role string

const (
	RoleStudent   Role = "student"
	RoleFaculty   Role = "faculty"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

var validRoles = map[Role]bool{
	RoleStudent:   true,
	RoleFaculty:   true,
	RoleLibrarian: true,
	RoleAdmin:     true,
}

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	return validRoles[r]
}

// ParseRole converts a raw string into a Role.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}

// User is an account in the repository: students submit documents,
// faculty review them, librarians curate and publish.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Program    string    `json:"program,omitempty"`
	Department string    `json:"department,omitempty"`
	IDNumber   string    `json:"id_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
