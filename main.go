package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/routes/associations"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
	"github.com/uncle-tee/socialite.io/app/routes/invoices"
	"github.com/uncle-tee/socialite.io/app/routes/members"
	"github.com/uncle-tee/socialite.io/app/routes/roles"
	"github.com/uncle-tee/socialite.io/app/routes/servicefees"
	"github.com/uncle-tee/socialite.io/app/routes/transactions"
	"github.com/uncle-tee/socialite.io/app/services"
)

// customErrorHandler translates typed business errors into their HTTP
// status and the {code, message} error body clients expect.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperrors.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.HTTPStatus()
		message = appErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"message": message,
	})
}

func main() {
	config.Init()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	scheduler := services.StartBillingScheduler(config.GetDB())
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())

	verifier := services.NewFlutterwaveClient(config.AppConfig.Gateway)

	// Routes
	auth.SetupAuthRoutes(app)
	associations.SetupAssociationRoutes(app)
	members.SetupMemberRoutes(app)
	roles.SetupRoleRoutes(app)
	servicefees.SetupServiceFeeRoutes(app)
	invoices.SetupInvoiceRoutes(app)
	transactions.SetupTransactionRoutes(app, verifier)

	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	log.Println("Server starting on :3000")
	log.Fatal(app.Listen(":3000"))
}
