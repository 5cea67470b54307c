package associations

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
	"github.com/uncle-tee/socialite.io/app/services"
)

// OnboardAPI creates or updates the principal's pending association and
// optionally activates it, creating its wallet exactly once.
func OnboardAPI(c *fiber.Ctx, db *sql.DB) error {
	var request services.OnboardRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := services.Onboard(db, auth.User(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": result,
		"code": fiber.StatusCreated,
	})
}
