package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"thesisrepo/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; all business logic lives in the injected services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, wfSvc service.WorkflowService, statsSvc service.StatsService, userSvc service.UserService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoints
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Documents
	app.Get("/documents", ListDocuments(docSvc))
	app.Post("/documents", UploadDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))
	app.Get("/documents/:id/download", DownloadDocument(docSvc))

	// Workflow
	app.Post("/documents/:id/transitions", TransitionDocument(wfSvc))
	app.Get("/documents/:id/transitions", DocumentTargets(wfSvc))
	app.Get("/documents/:id/history", DocumentHistory(wfSvc))

	// Dashboard statistics
	app.Get("/stats", GetStats(statsSvc))

	// Users
	app.Post("/users", CreateUser(userSvc))
	app.Get("/users/:id", GetUser(userSvc))
}
