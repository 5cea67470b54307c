package invoices

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
	"github.com/uncle-tee/socialite.io/app/services"
)

// CreateInvoiceAPI groups outstanding bills into an invoice backed by a
// payment request for the combined outstanding amount.
func CreateInvoiceAPI(c *fiber.Ctx, db *sql.DB) error {
	var request services.InvoiceRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := services.CreateInvoice(db, auth.Association(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": result,
		"code": fiber.StatusCreated,
	})
}
