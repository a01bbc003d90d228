package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"thesisrepo/internal/http/middleware"
	"thesisrepo/internal/model"
	"thesisrepo/internal/repository"
	"thesisrepo/internal/service"
)

// actorFromCtx returns the acting user's id, preferring the value stored by
// the Actor middleware and falling back to the raw header.
func actorFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.ActorIDLocalKey).(string); ok && v != "" {
		return v
	}
	return c.Get(middleware.ActorIDHeader)
}

// splitList parses a comma-separated form value into trimmed, non-empty items.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListDocuments returns a paginated document listing.
// Optional query filters: status, program, owner.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		var f repository.ListFilter
		if raw := c.Query("status"); raw != "" {
			status, err := model.ParseStatus(raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status filter")
			}
			f.Status = status
		}
		f.Program = c.Query("program")
		f.OwnerID = c.Query("owner")

		res, err := docSvc.List(c.UserContext(), f, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument accepts a multipart form with a PDF under "file" and the
// thesis metadata as form fields. The actor becomes the document owner.
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID := actorFromCtx(c)
		if actorID == "" {
			return writeError(c, fiber.StatusUnauthorized, "ACTOR_REQUIRED", "X-User-ID header is required")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		year, _ := strconv.Atoi(c.FormValue("year"))
		pages, _ := strconv.Atoi(c.FormValue("pages"))
		in := service.UploadInput{
			Title:    c.FormValue("title"),
			Abstract: c.FormValue("abstract"),
			Authors:  splitList(c.FormValue("authors")),
			Adviser:  c.FormValue("adviser"),
			Program:  c.FormValue("program"),
			Year:     year,
			Keywords: splitList(c.FormValue("keywords")),
			Pages:    pages,
		}

		doc, err := docSvc.Upload(c.UserContext(), actorID, f, in, fh.Filename, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a single document by id.
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument returns a presigned URL for the document's file.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		actorID := actorFromCtx(c)
		if actorID == "" {
			return writeError(c, fiber.StatusUnauthorized, "ACTOR_REQUIRED", "X-User-ID header is required")
		}
		url, err := docSvc.DownloadURL(c.UserContext(), actorID, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteDocument removes a document; requires the canDelete capability.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		actorID := actorFromCtx(c)
		if actorID == "" {
			return writeError(c, fiber.StatusUnauthorized, "ACTOR_REQUIRED", "X-User-ID header is required")
		}
		if err := docSvc.Delete(c.UserContext(), actorID, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
