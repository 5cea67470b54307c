package roles

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
)

// SetupRoleRoutes sets up the association-scoped role routes.
func SetupRoleRoutes(app *fiber.App) {
	group := app.Group("/roles")
	group.Use(auth.AuthMiddleware)
	group.Use(auth.AssociationContextMiddleware(config.GetDB))

	group.Post("/", func(c *fiber.Ctx) error {
		return CreateRoleAPI(c, config.GetDB())
	})

	group.Get("/", func(c *fiber.Ctx) error {
		return ListMembershipRolesAPI(c, config.GetDB())
	})

	group.Get("/:code", func(c *fiber.Ctx) error {
		return GetRoleAPI(c, config.GetDB())
	})

	group.Delete("/:code", func(c *fiber.Ctx) error {
		return DeleteRoleAPI(c, config.GetDB())
	})
}
