package servicefees

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/routes/auth"
)

var serviceFeeColumns = []string{
	"id", "code", "name", "description", "type", "cycle", "amount_in_minor_unit",
	"billing_start_date", "next_billing_date", "association_id", "status",
	"created_at", "updated_at",
}

func newTestApp(mock sqlmock.Sqlmock) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var appErr *apperrors.Error
			var fiberErr *fiber.Error
			switch {
			case errors.As(err, &appErr):
				code = appErr.HTTPStatus()
			case errors.As(err, &fiberErr):
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"code": code, "message": err.Error()})
		},
	})
	SetupServiceFeeRoutes(app)

	now := time.Now()
	mock.ExpectQuery("FROM associations").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "name", "type", "status", "address", "country_code",
			"bank_code", "account_number", "created_at", "updated_at",
		}).AddRow("assoc-1", "ASC-1", "Umoja Club", "SOCIAL_CLUB", "ACTIVE",
			nil, nil, nil, nil, now, now))
	mock.ExpectQuery("FROM memberships").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reference", "portal_user_id", "association_id", "account_type", "status",
			"created_at", "updated_at",
		}).AddRow("member-1", "MBR-1", "user-1", "assoc-1", "EXECUTIVE_ACCOUNT", "ACTIVE", now, now))
	return app
}

func TestSearchServiceFeesReturnsDataEnvelope(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	app := newTestApp(mock)

	now := time.Now()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM service_fees").
		WillReturnRows(sqlmock.NewRows(serviceFeeColumns).
			AddRow("fee-1", "FEE-1", "Monthly dues", nil, "DUES", "MONTHLY", 500000,
				now, now.AddDate(0, 1, 0), "assoc-1", "ACTIVE", now, now))

	token, err := auth.GenerateJWT("user-1", "ada@example.com", "Ada", "Okafor")
	require.NoError(t, err)

	request := httptest.NewRequest("GET", "/service-fees?name=dues&limit=10", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set(auth.AssociationHeader, "ASC-1")
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, response.StatusCode)

	var body struct {
		Data struct {
			Items []struct {
				Code string `json:"code"`
			} `json:"items"`
			Total        int `json:"total"`
			Offset       int `json:"offset"`
			ItemsPerPage int `json:"itemsPerPage"`
		} `json:"data"`
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))

	assert.Equal(t, 1, body.Data.Total)
	assert.Equal(t, 10, body.Data.ItemsPerPage)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "FEE-1", body.Data.Items[0].Code)
	assert.Equal(t, fiber.StatusOK, body.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteServiceFeeSoftDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	app := newTestApp(mock)

	now := time.Now()
	mock.ExpectQuery("FROM service_fees").
		WillReturnRows(sqlmock.NewRows(serviceFeeColumns).
			AddRow("fee-1", "FEE-1", "Monthly dues", nil, "DUES", "MONTHLY", 500000,
				now, now.AddDate(0, 1, 0), "assoc-1", "ACTIVE", now, now))
	mock.ExpectExec("UPDATE service_fees").
		WithArgs("INACTIVE", "fee-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	token, err := auth.GenerateJWT("user-1", "ada@example.com", "Ada", "Okafor")
	require.NoError(t, err)

	request := httptest.NewRequest("DELETE", "/service-fees/FEE-1", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set(auth.AssociationHeader, "ASC-1")
	response, err := app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, response.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
