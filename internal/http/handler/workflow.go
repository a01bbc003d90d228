package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"thesisrepo/internal/model"
	"thesisrepo/internal/service"
)

// transitionRequest is the body of POST /documents/:id/transitions.
type transitionRequest struct {
	ToStatus string `json:"to_status"`
	Reason   string `json:"reason,omitempty"`
}

// TransitionDocument moves a document to a new workflow status on behalf of
// the acting user.
func TransitionDocument(wfSvc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		actorID := actorFromCtx(c)
		if actorID == "" {
			return writeError(c, fiber.StatusUnauthorized, "ACTOR_REQUIRED", "X-User-ID header is required")
		}

		var req transitionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.ToStatus == "" {
			return writeError(c, fiber.StatusBadRequest, "STATUS_REQUIRED", "to_status is required")
		}

		entry, err := wfSvc.Transition(c.UserContext(), id, model.Status(req.ToStatus), actorID, req.Reason)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// DocumentHistory returns the document's transition audit trail, newest first.
func DocumentHistory(wfSvc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		entries, err := wfSvc.History(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": entries})
	}
}

// DocumentTargets lists the statuses the acting user may move the document to.
func DocumentTargets(wfSvc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		actorID := actorFromCtx(c)
		if actorID == "" {
			return writeError(c, fiber.StatusUnauthorized, "ACTOR_REQUIRED", "X-User-ID header is required")
		}
		targets, err := wfSvc.Targets(c.UserContext(), id, actorID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": targets})
	}
}
