package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceFeeColumns = []string{
	"id", "code", "name", "description", "type", "cycle", "amount_in_minor_unit",
	"billing_start_date", "next_billing_date", "association_id", "status",
	"created_at", "updated_at",
}

func TestGenerateCycleBillsCreatesOneBillPerSubscription(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	due := now.Add(-time.Hour)
	mock.ExpectQuery("FROM service_fees").
		WillReturnRows(sqlmock.NewRows(serviceFeeColumns).
			AddRow("fee-1", "FEE-1", "Monthly dues", nil, "DUES", "MONTHLY", 500000,
				due.AddDate(0, -1, 0), due, "assoc-1", "ACTIVE", now, now))
	mock.ExpectQuery("FROM subscriptions").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "service_fee_id", "membership_id", "status", "created_at", "updated_at",
		}).
			AddRow("sub-1", "SUB-1", "fee-1", "member-1", "ACTIVE", now, now).
			AddRow("sub-2", "SUB-2", "fee-1", "member-2", "ACTIVE", now, now))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bills").WillReturnRows(insertReturningRows("bill-1"))
	mock.ExpectQuery("INSERT INTO bills").WillReturnRows(insertReturningRows("bill-2"))
	// the advance makes re-running the same cycle a no-op
	mock.ExpectExec("UPDATE service_fees").
		WithArgs(due.AddDate(0, 1, 0), "fee-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, GenerateCycleBills(db, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateCycleBillsWithNothingDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM service_fees").
		WillReturnRows(sqlmock.NewRows(serviceFeeColumns))

	require.NoError(t, GenerateCycleBills(db, time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
