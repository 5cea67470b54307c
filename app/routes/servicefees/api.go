package servicefees

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

// CreateServiceFeeAPI creates a fee and subscribes its recipients in one go.
func CreateServiceFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var request services.ServiceFeeRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	fee, err := services.CreateServiceFee(db, auth.Association(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"code": fee.Code,
		},
		"code": fiber.StatusCreated,
	})
}

// GetServiceFeeAPI fetches a fee by code, including soft deleted ones.
func GetServiceFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	code := c.Params("code")

	fee, err := database.GetServiceFeeByCodeAndAssociation(db, code, auth.Association(c).ID)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("service fee with code %s cannot be found", code)
	}
	if err != nil {
		return err
	}

	subscriberCount, err := database.CountSubscriptionsByServiceFeeAndStatus(db, fee.ID, models.StatusActive)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"serviceFee":          fee,
			"activeSubscriptions": subscriberCount,
		},
		"code": fiber.StatusOK,
	})
}

// DeleteServiceFeeAPI soft deletes a fee; it stays queryable by code.
func DeleteServiceFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	code := c.Params("code")

	fee, err := database.GetServiceFeeByCodeAndAssociation(db, code, auth.Association(c).ID)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("service fee with code %s cannot be found", code)
	}
	if err != nil {
		return err
	}

	if err := database.DeactivateServiceFee(db, fee.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SearchServiceFeesAPI runs the filtered, paginated fee search.
func SearchServiceFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.ServiceFeeFilters{
		Status:    models.GenericStatus(c.Query("status")),
		Type:      models.ServiceType(c.Query("type")),
		Frequency: models.BillingCycle(c.Query("frequency")),
		Name:      c.Query("name"),
		Limit:     c.QueryInt("limit", defaultPageSize),
		Offset:    c.QueryInt("offset", 0),
	}

	var err error
	if filters.MinAmount, err = parseAmount(c.Query("minAmount")); err != nil {
		return apperrors.Validation("minAmount must be a whole number of minor units")
	}
	if filters.MaxAmount, err = parseAmount(c.Query("maxAmount")); err != nil {
		return apperrors.Validation("maxAmount must be a whole number of minor units")
	}
	if filters.StartDateAfter, err = parseDayStart(c.Query("startDateAfter")); err != nil {
		return err
	}
	if filters.StartDateBefore, err = parseDayEnd(c.Query("startDateBefore")); err != nil {
		return err
	}
	if filters.DateCreatedAfter, err = parseDayStart(c.Query("dateCreatedAfter")); err != nil {
		return err
	}
	if filters.DateCreatedBefore, err = parseDayEnd(c.Query("dateCreatedBefore")); err != nil {
		return err
	}

	fees, total, err := database.SearchServiceFees(db, auth.Association(c).ID, filters)
	if err != nil {
		return err
	}
	if fees == nil {
		fees = []*models.ServiceFee{}
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"items":        fees,
			"total":        total,
			"offset":       filters.Offset,
			"itemsPerPage": filters.Limit,
		},
		"code": fiber.StatusOK,
	})
}

// ListSubscriptionsAPI lists a fee's subscription summaries, paginated.
func ListSubscriptionsAPI(c *fiber.Ctx, db *sql.DB) error {
	code := c.Params("code")
	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)

	fee, err := database.GetServiceFeeByCodeAndAssociation(db, code, auth.Association(c).ID)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("service fee with code %s cannot be found", code)
	}
	if err != nil {
		return err
	}

	summaries, total, err := database.GetSubscriptionSummariesByServiceFee(db, fee.ID, limit, offset)
	if err != nil {
		return err
	}
	if summaries == nil {
		summaries = []*database.SubscriptionSummaryRow{}
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"items":        summaries,
			"total":        total,
			"offset":       offset,
			"itemsPerPage": limit,
		},
		"code": fiber.StatusOK,
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

// parseDayStart reads a DD/MM/YYYY query value as the start of that day.
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

// parseDayEnd reads a DD/MM/YYYY query value as the end of that day, so a
// same-day upper bound still matches rows created during the day.
func parseDayEnd(raw string) (time.Time, error) {
	day, err := parseDayStart(raw)
	if err != nil || day.IsZero() {
		return day, err
	}
	return day.Add(24*time.Hour - time.Nanosecond), nil
}
