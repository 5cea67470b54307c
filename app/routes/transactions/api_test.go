package transactions

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

func newTestApp(t *testing.T, mock sqlmock.Sqlmock) *fiber.App {
	t.Helper()
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
	SetupTransactionRoutes(app, nil)

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

func TestSearchTransactionsReturnsBarePageObject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	app := newTestApp(t, mock)

	now := time.Now()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM payment_transactions").
		WillReturnRows(sqlmock.NewRows([]string{
			"transaction_reference", "amount_in_minor_unit", "first_name", "last_name",
			"reference", "confirmed_payment_date", "status",
		}).AddRow("REQ-1", 7000, "Ada", "Okafor", "MBR-1", now, "CONFIRMED"))

	token, err := auth.GenerateJWT("user-1", "ada@example.com", "Ada", "Okafor")
	require.NoError(t, err)

	request := httptest.NewRequest("GET", "/payment-transactions?limit=10&offset=0", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set(auth.AssociationHeader, "ASC-1")
	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, response.StatusCode)

	var body struct {
		Items []struct {
			TransactionReference string `json:"transactionReference"`
			AmountInMinorUnit    int64  `json:"amountInMinorUnit"`
			PaidByFirstName      string `json:"paidByFirstName"`
			PaidByLastLastName   string `json:"paidByLastLastName"`
			MembershipReference  string `json:"membershipReference"`
		} `json:"items"`
		Total        int `json:"total"`
		Offset       int `json:"offset"`
		ItemsPerPage int `json:"itemsPerPage"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))

	// the page object is the body itself, not wrapped in a data envelope
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 0, body.Offset)
	assert.Equal(t, 10, body.ItemsPerPage)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "REQ-1", body.Items[0].TransactionReference)
	assert.Equal(t, int64(7000), body.Items[0].AmountInMinorUnit)
	assert.Equal(t, "Ada", body.Items[0].PaidByFirstName)
	assert.Equal(t, "MBR-1", body.Items[0].MembershipReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchTransactionsRejectsBadDateBound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	app := newTestApp(t, mock)

	token, err := auth.GenerateJWT("user-1", "ada@example.com", "Ada", "Okafor")
	require.NoError(t, err)

	request := httptest.NewRequest("GET", "/payment-transactions?dateCreatedAfter=2026-01-01", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set(auth.AssociationHeader, "ASC-1")
	response, err := app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}
