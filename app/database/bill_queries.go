package database

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/uncle-tee/socialite.io/app/models"
)

func scanBill(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Bill, error) {
	bill := &models.Bill{}
	err := scanner.Scan(
		&bill.ID, &bill.Code, &bill.SubscriptionID,
		&bill.PayableAmountInMinorUnit, &bill.TotalAmountPaidInMinorUnit,
		&bill.PaymentStatus, &bill.CurrencyCode, &bill.Status,
		&bill.CreatedAt, &bill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// CreateBill inserts a bill inside the given transaction.
func CreateBill(tx *sql.Tx, bill *models.Bill) error {
	query := `INSERT INTO bills (code, subscription_id, payable_amount_in_minor_unit, total_amount_paid_in_minor_unit, payment_status, currency_code, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		bill.Code, bill.SubscriptionID, bill.PayableAmountInMinorUnit,
		bill.TotalAmountPaidInMinorUnit, bill.PaymentStatus, bill.CurrencyCode, bill.Status,
	).Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
}

// GetOutstandingBillsByCodesAndAssociation resolves bill codes to unpaid
// active bills belonging to the association.
func GetOutstandingBillsByCodesAndAssociation(db *sql.DB, codes []string, associationID string) ([]*models.Bill, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	query := `SELECT b.id, b.code, b.subscription_id, b.payable_amount_in_minor_unit,
			  b.total_amount_paid_in_minor_unit, b.payment_status, b.currency_code, b.status,
			  b.created_at, b.updated_at
			  FROM bills b
			  JOIN subscriptions s ON s.id = b.subscription_id
			  JOIN service_fees f ON f.id = s.service_fee_id
			  WHERE b.code = ANY($1) AND f.association_id = $2
			    AND b.status = $3 AND b.payment_status <> $4
			  ORDER BY b.created_at, b.id`

	rows, err := db.Query(query, pq.Array(codes), associationID, models.StatusActive, models.PaymentPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBills(rows)
}

// GetBillsByPaymentRequest resolves a payment request through its invoices to
// the underlying bills. Bills come back oldest first with the id as a
// tiebreak so allocation order is deterministic.
func GetBillsByPaymentRequest(tx *sql.Tx, paymentRequestID string) ([]*models.Bill, error) {
	query := `SELECT DISTINCT b.id, b.code, b.subscription_id, b.payable_amount_in_minor_unit,
			  b.total_amount_paid_in_minor_unit, b.payment_status, b.currency_code, b.status,
			  b.created_at, b.updated_at
			  FROM bills b
			  JOIN bill_invoices bi ON bi.bill_id = b.id
			  JOIN invoices i ON i.id = bi.invoice_id
			  WHERE i.payment_request_id = $1 AND b.status = $2
			  ORDER BY b.created_at, b.id`

	rows, err := tx.Query(query, paymentRequestID, models.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBills(rows)
}

// UpdateBillPayment persists an allocation result inside the transaction.
func UpdateBillPayment(tx *sql.Tx, bill *models.Bill) error {
	query := `UPDATE bills
			  SET total_amount_paid_in_minor_unit = $1, payment_status = $2, updated_at = NOW()
			  WHERE id = $3`
	_, err := tx.Exec(query, bill.TotalAmountPaidInMinorUnit, bill.PaymentStatus, bill.ID)
	return err
}

func collectBills(rows *sql.Rows) ([]*models.Bill, error) {
	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}
