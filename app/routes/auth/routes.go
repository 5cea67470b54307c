package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/sign-up", func(c *fiber.Ctx) error {
		return SignUpAPI(c, config.GetDB())
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		return LoginAPI(c, config.GetDB())
	})

	auth.Put("/password", AuthMiddleware, func(c *fiber.Ctx) error {
		return ChangePasswordAPI(c, config.GetDB())
	})
}
