package associations

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
)

// SetupAssociationRoutes sets up the onboarding routes. Onboarding needs a
// signed in principal but deliberately no association context, since the
// association may still be pending activation.
func SetupAssociationRoutes(app *fiber.App) {
	group := app.Group("/associations")
	group.Use(auth.AuthMiddleware)

	group.Put("/onboard", func(c *fiber.Ctx) error {
		return OnboardAPI(c, config.GetDB())
	})
}
