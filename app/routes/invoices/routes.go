package invoices

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
)

// SetupInvoiceRoutes sets up the association-scoped invoice routes.
func SetupInvoiceRoutes(app *fiber.App) {
	group := app.Group("/invoices")
	group.Use(auth.AuthMiddleware)
	group.Use(auth.AssociationContextMiddleware(config.GetDB))

	group.Post("/", func(c *fiber.Ctx) error {
		return CreateInvoiceAPI(c, config.GetDB())
	})
}
