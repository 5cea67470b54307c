package transactions

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
	"github.com/uncle-tee/socialite.io/app/services"
)

const defaultPageSize = 20

// ConfirmTransactionAPI verifies a gateway payment reference and applies the
// confirmed amount to the payment request's bills and the wallet.
func ConfirmTransactionAPI(c *fiber.Ctx, db *sql.DB, verifier services.TransactionVerifier) error {
	var request services.ConfirmRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := services.ConfirmTransaction(db, verifier, auth.Membership(c), request)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": result,
		"code": fiber.StatusOK,
	})
}

// SearchTransactionsAPI runs the filtered, paginated transaction search. The
// response body is the bare page object rather than the data envelope.
func SearchTransactionsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.PaymentTransactionFilters{
		Status: models.TransactionStatus(c.Query("status")),
		Limit:  c.QueryInt("limit", defaultPageSize),
		Offset: c.QueryInt("offset", 0),
	}

	var err error
	if filters.MinAmountInMinorUnit, err = parseAmount(c.Query("minAmountInMinorUnit")); err != nil {
		return apperrors.Validation("minAmountInMinorUnit must be a whole number of minor units")
	}
	if filters.MaxAmountInMinorUnit, err = parseAmount(c.Query("maxAmountInMinorUnit")); err != nil {
		return apperrors.Validation("maxAmountInMinorUnit must be a whole number of minor units")
	}
	if filters.DateCreatedAfter, err = parseDayStart(c.Query("dateCreatedAfter")); err != nil {
		return err
	}
	if filters.DateCreatedBefore, err = parseDayEnd(c.Query("dateCreatedBefore")); err != nil {
		return err
	}

	rows, total, err := database.SearchPaymentTransactions(db, auth.Association(c).ID, filters)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []*database.PaymentTransactionRow{}
	}

	return c.JSON(fiber.Map{
		"items":        rows,
		"total":        total,
		"offset":       filters.Offset,
		"itemsPerPage": filters.Limit,
	})
}

func parseAmount(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func parseDayStart(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.Validation("dates must be in DD/MM/YYYY format")
	}
	return day, nil
}

func parseDayEnd(raw string) (time.Time, error) {
	day, err := parseDayStart(raw)
	if err != nil || day.IsZero() {
		return day, err
	}
	return day.Add(24*time.Hour - time.Nanosecond), nil
}
