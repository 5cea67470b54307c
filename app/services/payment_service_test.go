package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncle-tee/socialite.io/app/models"
)

var billColumns = []string{
	"id", "code", "subscription_id", "payable_amount_in_minor_unit",
	"total_amount_paid_in_minor_unit", "payment_status", "currency_code", "status",
	"created_at", "updated_at",
}

var transactionColumns = []string{
	"id", "payment_request_id", "amount_in_minor_unit", "transaction_reference",
	"merchant_reference", "paid_by_membership_id", "confirmed_payment_date", "status",
	"created_at", "updated_at",
}

func expectNewTransactionLookup(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM payment_transactions").
		WillReturnError(sql.ErrNoRows)
}

func expectWalletLookup(mock sqlmock.Sqlmock, book, available int64) {
	now := time.Now()
	mock.ExpectQuery("FROM wallets").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reference", "association_id", "book_balance_in_minor_unit",
			"available_balance_in_minor_unit", "status", "created_at", "updated_at",
		}).AddRow("wallet-1", "WAL-1", "assoc-1", book, available, "ACTIVE", now, now))
}

func expectRequestLookup(mock sqlmock.Sqlmock, amount int64) {
	now := time.Now()
	mock.ExpectQuery("FROM payment_requests").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reference", "association_id", "amount_in_minor_unit", "status",
			"created_at", "updated_at",
		}).AddRow("req-1", "REQ-1", "assoc-1", amount, "ACTIVE", now, now))
}

func TestApplyTransactionAllocatesOldestFirstAndCreditsWallet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	expectNewTransactionLookup(mock)
	expectRequestLookup(mock, 8000)
	expectWalletLookup(mock, 0, 0)
	mock.ExpectQuery("FROM bills").
		WillReturnRows(sqlmock.NewRows(billColumns).
			AddRow("bill-1", "BIL-1", "sub-1", 5000, 0, "NOT_PAID", "NGN", "ACTIVE", now, now).
			AddRow("bill-2", "BIL-2", "sub-2", 3000, 0, "NOT_PAID", "NGN", "ACTIVE", now, now))
	// oldest bill settles in full, the second takes the remainder
	mock.ExpectExec("UPDATE bills").
		WithArgs(int64(5000), "PAID", "bill-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bills").
		WithArgs(int64(2000), "PARTIALLY_PAID", "bill-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE wallets").
		WithArgs(int64(7000), int64(7000), "wallet-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO payment_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("txn-1", now, now))
	mock.ExpectCommit()

	result, err := ApplyTransaction(db, nil, &GatewayVerification{
		TransactionReference: "REQ-1",
		MerchantReference:    "FLW-1",
		AmountInMinorUnit:    7000,
		Successful:           true,
		PaidAt:               now,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionConfirmed, result.Status)
	assert.Equal(t, int64(7000), result.AllocatedInMinorUnit)
	assert.Equal(t, int64(0), result.WalletCreditInMinorUnit)
	assert.Equal(t, 1, result.BillsSettled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTransactionOverpaymentStaysOnWallet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	expectNewTransactionLookup(mock)
	expectRequestLookup(mock, 5000)
	expectWalletLookup(mock, 1000, 1000)
	mock.ExpectQuery("FROM bills").
		WillReturnRows(sqlmock.NewRows(billColumns).
			AddRow("bill-1", "BIL-1", "sub-1", 5000, 0, "NOT_PAID", "NGN", "ACTIVE", now, now))
	mock.ExpectExec("UPDATE bills").
		WithArgs(int64(5000), "PAID", "bill-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// the wallet keeps the full confirmed amount, allocation plus credit
	mock.ExpectExec("UPDATE wallets").
		WithArgs(int64(8000), int64(8000), "wallet-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO payment_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("txn-1", now, now))
	mock.ExpectCommit()

	result, err := ApplyTransaction(db, nil, &GatewayVerification{
		TransactionReference: "REQ-1",
		MerchantReference:    "FLW-1",
		AmountInMinorUnit:    7000,
		Successful:           true,
		PaidAt:               now,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), result.AllocatedInMinorUnit)
	assert.Equal(t, int64(2000), result.WalletCreditInMinorUnit)
	assert.Equal(t, 1, result.BillsSettled)
	// conservation: every minor unit of the payment is accounted for
	assert.Equal(t, int64(7000), result.AllocatedInMinorUnit+result.WalletCreditInMinorUnit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTransactionIsIdempotentForTerminalTransactions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM payment_transactions").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow("txn-1", "req-1", 7000, "REQ-1", "FLW-1", nil, now, "CONFIRMED", now, now))
	mock.ExpectRollback()

	result, err := ApplyTransaction(db, nil, &GatewayVerification{
		TransactionReference: "REQ-1",
		AmountInMinorUnit:    7000,
		Successful:           true,
		PaidAt:               now,
	})
	require.NoError(t, err)

	// no bill or wallet mutation happened, just the recorded outcome
	assert.Equal(t, models.TransactionConfirmed, result.Status)
	assert.Equal(t, int64(0), result.AllocatedInMinorUnit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTransactionRecordsUnreconciledPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	expectNewTransactionLookup(mock)
	mock.ExpectQuery("FROM payment_requests").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO payment_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("txn-1", now, now))
	mock.ExpectCommit()

	result, err := ApplyTransaction(db, nil, &GatewayVerification{
		TransactionReference: "UNKNOWN-REF",
		AmountInMinorUnit:    7000,
		Successful:           true,
		PaidAt:               now,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionUnreconciled, result.Status)
	assert.Equal(t, int64(0), result.AllocatedInMinorUnit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type stubVerifier struct {
	verification *GatewayVerification
	err          error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*GatewayVerification, error) {
	return s.verification, s.err
}

func TestConfirmTransactionRejectsUnsuccessfulPayment(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	verifier := &stubVerifier{verification: &GatewayVerification{
		TransactionReference: "REQ-1",
		Successful:           false,
	}}

	_, err = ConfirmTransaction(db, verifier, nil, ConfirmRequest{Reference: "REQ-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not successful")
}

func TestConfirmTransactionRecordsPendingOnGatewayError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectNewTransactionLookup(mock)
	expectRequestLookup(mock, 7000)
	mock.ExpectQuery("INSERT INTO payment_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("txn-1", time.Now(), time.Now()))
	mock.ExpectCommit()

	verifier := &stubVerifier{err: errors.New("gateway timeout")}

	_, err = ConfirmTransaction(db, verifier, nil, ConfirmRequest{Reference: "REQ-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry later")

	// the payment is kept as a non-terminal PENDING row for reconciliation
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmTransactionDoesNotDuplicatePendingRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM payment_transactions").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow("txn-1", nil, 7000, "REQ-1", nil, nil, nil, "PENDING", now, now))
	mock.ExpectRollback()

	verifier := &stubVerifier{err: errors.New("gateway timeout")}

	_, err = ConfirmTransaction(db, verifier, nil, ConfirmRequest{Reference: "REQ-1"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTransactionCompletesPendingTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM payment_transactions").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow("txn-1", "req-1", 7000, "REQ-1", nil, nil, nil, "PENDING", now, now))
	expectRequestLookup(mock, 7000)
	expectWalletLookup(mock, 0, 0)
	mock.ExpectQuery("FROM bills").
		WillReturnRows(sqlmock.NewRows(billColumns).
			AddRow("bill-1", "BIL-1", "sub-1", 7000, 0, "NOT_PAID", "NGN", "ACTIVE", now, now))
	mock.ExpectExec("UPDATE bills").
		WithArgs(int64(7000), "PAID", "bill-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE wallets").
		WithArgs(int64(7000), int64(7000), "wallet-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// the pending row is completed in place, not duplicated
	mock.ExpectExec("UPDATE payment_transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := ApplyTransaction(db, nil, &GatewayVerification{
		TransactionReference: "REQ-1",
		MerchantReference:    "FLW-1",
		AmountInMinorUnit:    7000,
		Successful:           true,
		PaidAt:               now,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionConfirmed, result.Status)
	assert.Equal(t, int64(7000), result.AllocatedInMinorUnit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmTransactionRequiresReference(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = ConfirmTransaction(db, &stubVerifier{}, nil, ConfirmRequest{})
	require.Error(t, err)
}
