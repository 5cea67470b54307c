package services

import (
	"database/sql"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// InvoiceRequest groups outstanding bills into a payable unit.
type InvoiceRequest struct {
	BillCodes []string `json:"billCodes"`
}

// InvoiceResult reports the created invoice and the payment request that
// covers it.
type InvoiceResult struct {
	InvoiceCode             string `json:"invoiceCode"`
	PaymentRequestReference string `json:"paymentRequestReference"`
	AmountInMinorUnit       int64  `json:"amountInMinorUnit"`
}

// CreateInvoice builds an invoice over the given outstanding bills and a
// payment request covering the invoice total, in one transaction.
func CreateInvoice(db *sql.DB, association *models.Association, request InvoiceRequest) (*InvoiceResult, error) {
	if len(request.BillCodes) == 0 {
		return nil, apperrors.Validation("billCodes must not be empty")
	}

	bills, err := database.GetOutstandingBillsByCodesAndAssociation(db, request.BillCodes, association.ID)
	if err != nil {
		return nil, err
	}
	if len(bills) != len(request.BillCodes) {
		return nil, apperrors.IllegalArgument("one or more bills cannot be invoiced for this association")
	}

	var outstanding int64
	for _, bill := range bills {
		outstanding += bill.Outstanding()
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	paymentRequest := &models.PaymentRequest{
		Reference:         NewReference("REQ"),
		AssociationID:     association.ID,
		AmountInMinorUnit: outstanding,
		Status:            models.StatusActive,
	}
	if err := database.CreatePaymentRequest(tx, paymentRequest); err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		Code:              NewReference("INV"),
		AssociationID:     association.ID,
		PaymentRequestID:  &paymentRequest.ID,
		AmountInMinorUnit: outstanding,
		PaymentStatus:     models.PaymentNotPaid,
		Status:            models.StatusActive,
	}
	if err := database.CreateInvoice(tx, invoice); err != nil {
		return nil, err
	}

	for _, bill := range bills {
		if err := database.CreateBillInvoice(tx, bill.ID, invoice.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &InvoiceResult{
		InvoiceCode:             invoice.Code,
		PaymentRequestReference: paymentRequest.Reference,
		AmountInMinorUnit:       outstanding,
	}, nil
}
