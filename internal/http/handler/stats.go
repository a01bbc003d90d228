package handler

import (
	"github.com/gofiber/fiber/v2"

	"thesisrepo/internal/service"
)

// GetStats returns document counts for the dashboard.
// Query params: owner or program narrow the scope; neither means all documents.
func GetStats(statsSvc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := service.StatsScope{
			OwnerID: c.Query("owner"),
			Program: c.Query("program"),
		}
		if scope.OwnerID != "" && scope.Program != "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SCOPE", "owner and program are mutually exclusive")
		}
		counts, err := statsSvc.Compute(c.UserContext(), scope)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(counts)
	}
}
