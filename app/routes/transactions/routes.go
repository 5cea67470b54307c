package transactions

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
	"github.com/uncle-tee/socialite.io/app/services"
)

// SetupTransactionRoutes sets up the association-scoped payment transaction
// routes, confirming against the given gateway verifier.
func SetupTransactionRoutes(app *fiber.App, verifier services.TransactionVerifier) {
	group := app.Group("/payment-transactions")
	group.Use(auth.AuthMiddleware)
	group.Use(auth.AssociationContextMiddleware(config.GetDB))

	group.Post("/confirm", func(c *fiber.Ctx) error {
		return ConfirmTransactionAPI(c, config.GetDB(), verifier)
	})

	group.Get("/", func(c *fiber.Ctx) error {
		return SearchTransactionsAPI(c, config.GetDB())
	})
}
