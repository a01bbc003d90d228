package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"thesisrepo/internal/model"
	"thesisrepo/internal/service"
)

type createUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Program    string `json:"program,omitempty"`
	Department string `json:"department,omitempty"`
	IDNumber   string `json:"id_number,omitempty"`
}

// CreateUser registers an account; requires the canManageUsers capability.
func CreateUser(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID := actorFromCtx(c)
		if actorID == "" {
			return writeError(c, fiber.StatusUnauthorized, "ACTOR_REQUIRED", "X-User-ID header is required")
		}
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		u, err := userSvc.Create(c.UserContext(), actorID, service.CreateUserInput{
			Name:       req.Name,
			Email:      req.Email,
			Role:       model.Role(req.Role),
			Program:    req.Program,
			Department: req.Department,
			IDNumber:   req.IDNumber,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// GetUser returns a user by id.
func GetUser(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := userSvc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}
