package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncle-tee/socialite.io/app/models"
)

func TestSearchPaymentTransactionsIncludesUnreconciled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// unreconciled rows have no payment_request_id, so the request join
	// must not drop them
	mock.ExpectQuery(`SELECT COUNT(.+) FROM payment_transactions t\s+LEFT JOIN payment_requests`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`LEFT JOIN payment_requests(.|\s)+t\.payment_request_id IS NULL(.|\s)+t\.status = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{
			"transaction_reference", "amount_in_minor_unit", "first_name", "last_name",
			"reference", "confirmed_payment_date", "status",
		}).AddRow("STRAY-REF", 7000, "", "", "", nil, "UNRECONCILED"))

	rows, total, err := SearchPaymentTransactions(db, "assoc-1", PaymentTransactionFilters{
		Status: models.TransactionUnreconciled,
		Limit:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "STRAY-REF", rows[0].TransactionReference)
	assert.Equal(t, "UNRECONCILED", rows[0].Status)
	assert.Nil(t, rows[0].PaymentDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
