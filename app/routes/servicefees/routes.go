package servicefees

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
)

// SetupServiceFeeRoutes sets up the association-scoped service fee routes.
func SetupServiceFeeRoutes(app *fiber.App) {
	group := app.Group("/service-fees")
	group.Use(auth.AuthMiddleware)
	group.Use(auth.AssociationContextMiddleware(config.GetDB))

	group.Post("/", func(c *fiber.Ctx) error {
		return CreateServiceFeeAPI(c, config.GetDB())
	})

	group.Get("/", func(c *fiber.Ctx) error {
		return SearchServiceFeesAPI(c, config.GetDB())
	})

	group.Get("/:code", func(c *fiber.Ctx) error {
		return GetServiceFeeAPI(c, config.GetDB())
	})

	group.Delete("/:code", func(c *fiber.Ctx) error {
		return DeleteServiceFeeAPI(c, config.GetDB())
	})

	group.Get("/:code/subscriptions", func(c *fiber.Ctx) error {
		return ListSubscriptionsAPI(c, config.GetDB())
	})
}
