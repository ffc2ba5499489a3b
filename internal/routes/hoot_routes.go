package routes

import (
	"hoot-api/internal/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupHootRoutes(app *fiber.App, h *controllers.HootHandler) {
	hoots := app.Group("/hoots")
	hoots.Post("/", h.Create)
	hoots.Get("/", h.List)
	hoots.Get("/:hootId", h.Get)
	hoots.Put("/:hootId", h.Update)
	hoots.Delete("/:hootId", h.Delete)
	hoots.Post("/:hootId/comments", h.AddComment)
}
