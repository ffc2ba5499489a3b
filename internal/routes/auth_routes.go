package routes

import (
	"hoot-api/internal/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthPublic registers the endpoints that issue tokens. Must run before
// the JWT guard is installed.
func SetupAuthPublic(app *fiber.App, h *controllers.AuthHandler) {
	auth := app.Group("/auth")
	auth.Post("/sign-up", h.SignUp)
	auth.Post("/sign-in", h.SignIn)
}

// SetupAuthPrivate registers the endpoints that need a principal.
func SetupAuthPrivate(app *fiber.App, h *controllers.AuthHandler) {
	app.Get("/auth/me", h.Me)
}
