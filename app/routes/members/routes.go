package members

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
)

// SetupMemberRoutes sets up the association-scoped membership routes.
func SetupMemberRoutes(app *fiber.App) {
	group := app.Group("/memberships")
	group.Use(auth.AuthMiddleware)
	group.Use(auth.AssociationContextMiddleware(config.GetDB))

	group.Post("/", func(c *fiber.Ctx) error {
		return EnrollMemberAPI(c, config.GetDB())
	})

	group.Get("/", func(c *fiber.Ctx) error {
		return ListMembersAPI(c, config.GetDB())
	})
}
