package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/uncle-tee/socialite.io/app/models"
)

// CreatePaymentRequest inserts a payment request inside the transaction.
func CreatePaymentRequest(tx *sql.Tx, request *models.PaymentRequest) error {
	query := `INSERT INTO payment_requests (reference, association_id, amount_in_minor_unit, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		request.Reference, request.AssociationID, request.AmountInMinorUnit, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

// GetPaymentRequestByReference finds a payment request inside the transaction.
func GetPaymentRequestByReference(tx *sql.Tx, reference string) (*models.PaymentRequest, error) {
	request := &models.PaymentRequest{}
	query := `SELECT id, reference, association_id, amount_in_minor_unit, status, created_at, updated_at
			  FROM payment_requests WHERE reference = $1`

	err := tx.QueryRow(query, reference).Scan(
		&request.ID, &request.Reference, &request.AssociationID,
		&request.AmountInMinorUnit, &request.Status, &request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return request, nil
}

// CreateInvoice inserts an invoice inside the transaction.
func CreateInvoice(tx *sql.Tx, invoice *models.Invoice) error {
	query := `INSERT INTO invoices (code, association_id, payment_request_id, amount_in_minor_unit, payment_status, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		invoice.Code, invoice.AssociationID, invoice.PaymentRequestID,
		invoice.AmountInMinorUnit, invoice.PaymentStatus, invoice.Status,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
}

// CreateBillInvoice joins a bill to an invoice inside the transaction.
func CreateBillInvoice(tx *sql.Tx, billID, invoiceID string) error {
	query := `INSERT INTO bill_invoices (bill_id, invoice_id, created_at) VALUES ($1, $2, NOW())`
	_, err := tx.Exec(query, billID, invoiceID)
	return err
}

// CreatePaymentTransaction inserts a transaction inside the transaction scope.
func CreatePaymentTransaction(tx *sql.Tx, transaction *models.PaymentTransaction) error {
	query := `INSERT INTO payment_transactions (payment_request_id, amount_in_minor_unit, transaction_reference, merchant_reference, paid_by_membership_id, confirmed_payment_date, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		transaction.PaymentRequestID, transaction.AmountInMinorUnit,
		transaction.TransactionReference, transaction.MerchantReference,
		transaction.PaidByMembershipID, transaction.ConfirmedPaymentDate, transaction.Status,
	).Scan(&transaction.ID, &transaction.CreatedAt, &transaction.UpdatedAt)
}

// GetPaymentTransactionByReferenceForUpdate locks the transaction row with
// the given gateway reference so concurrent confirmations serialize.
func GetPaymentTransactionByReferenceForUpdate(tx *sql.Tx, reference string) (*models.PaymentTransaction, error) {
	transaction := &models.PaymentTransaction{}
	query := `SELECT id, payment_request_id, amount_in_minor_unit, transaction_reference, merchant_reference, paid_by_membership_id, confirmed_payment_date, status, created_at, updated_at
			  FROM payment_transactions
			  WHERE transaction_reference = $1
			  FOR UPDATE`

	err := tx.QueryRow(query, reference).Scan(
		&transaction.ID, &transaction.PaymentRequestID, &transaction.AmountInMinorUnit,
		&transaction.TransactionReference, &transaction.MerchantReference,
		&transaction.PaidByMembershipID, &transaction.ConfirmedPaymentDate,
		&transaction.Status, &transaction.CreatedAt, &transaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// UpdatePaymentTransaction moves a transaction to its new state inside the
// transaction scope. Amount and request linkage are written too, so a pending
// marker picks up the gateway-confirmed figures when it completes.
func UpdatePaymentTransaction(tx *sql.Tx, transaction *models.PaymentTransaction) error {
	query := `UPDATE payment_transactions
			  SET payment_request_id = $1, amount_in_minor_unit = $2, status = $3, confirmed_payment_date = $4, updated_at = NOW()
			  WHERE id = $5`
	_, err := tx.Exec(query,
		transaction.PaymentRequestID, transaction.AmountInMinorUnit,
		transaction.Status, transaction.ConfirmedPaymentDate, transaction.ID,
	)
	return err
}

// PaymentTransactionFilters represents the optional search predicates for
// payment transactions. Unset fields are omitted from the query.
type PaymentTransactionFilters struct {
	MinAmountInMinorUnit *int64
	MaxAmountInMinorUnit *int64
	DateCreatedAfter     time.Time
	DateCreatedBefore    time.Time
	Status               models.TransactionStatus
	Limit                int
	Offset               int
}

// PaymentTransactionRow is the flattened projection for transaction search.
type PaymentTransactionRow struct {
	TransactionReference string     `json:"transactionReference"`
	AmountInMinorUnit    int64      `json:"amountInMinorUnit"`
	PaidByFirstName      string     `json:"paidByFirstName"`
	PaidByLastLastName   string     `json:"paidByLastLastName"`
	MembershipReference  string     `json:"membershipReference"`
	PaymentDate          *time.Time `json:"paymentDate"`
	Status               string     `json:"status"`
}

// SearchPaymentTransactions runs the filtered, paginated transaction search
// for an association and returns the page along with the unpaged total.
// Unreconciled transactions carry no request linkage, so they are included
// for every association; they need manual follow-up and must stay visible.
func SearchPaymentTransactions(db *sql.DB, associationID string, filters PaymentTransactionFilters) ([]*PaymentTransactionRow, int, error) {
	baseQuery := ` FROM payment_transactions t
			  LEFT JOIN payment_requests r ON r.id = t.payment_request_id
			  LEFT JOIN memberships m ON m.id = t.paid_by_membership_id
			  LEFT JOIN portal_users u ON u.id = m.portal_user_id
			  WHERE (r.association_id = $1 OR t.payment_request_id IS NULL)`
	args := []interface{}{associationID}
	argIndex := 2

	addCondition := func(condition string, value interface{}) {
		baseQuery += fmt.Sprintf(" AND "+condition, argIndex)
		args = append(args, value)
		argIndex++
	}

	if filters.MinAmountInMinorUnit != nil {
		addCondition("t.amount_in_minor_unit >= $%d", *filters.MinAmountInMinorUnit)
	}
	if filters.MaxAmountInMinorUnit != nil {
		addCondition("t.amount_in_minor_unit <= $%d", *filters.MaxAmountInMinorUnit)
	}
	if !filters.DateCreatedAfter.IsZero() {
		addCondition("t.confirmed_payment_date >= $%d", filters.DateCreatedAfter)
	}
	if !filters.DateCreatedBefore.IsZero() {
		addCondition("t.confirmed_payment_date <= $%d", filters.DateCreatedBefore)
	}
	if filters.Status != "" {
		addCondition("t.status = $%d", filters.Status)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageQuery := `SELECT t.transaction_reference, t.amount_in_minor_unit,
			  COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(m.reference, ''),
			  t.confirmed_payment_date, t.status` + baseQuery +
		fmt.Sprintf(" ORDER BY t.id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.Query(pageQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []*PaymentTransactionRow
	for rows.Next() {
		row := &PaymentTransactionRow{}
		err := rows.Scan(
			&row.TransactionReference, &row.AmountInMinorUnit,
			&row.PaidByFirstName, &row.PaidByLastLastName, &row.MembershipReference,
			&row.PaymentDate, &row.Status,
		)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, row)
	}
	return results, total, rows.Err()
}
