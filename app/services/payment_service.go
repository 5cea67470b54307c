package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// ConfirmRequest carries the payment confirmation payload.
type ConfirmRequest struct {
	Reference string `json:"reference"`
}

// ConfirmResult reports how a confirmed payment was applied.
type ConfirmResult struct {
	TransactionReference    string                   `json:"transactionReference"`
	Status                  models.TransactionStatus `json:"status"`
	AllocatedInMinorUnit    int64                    `json:"allocatedInMinorUnit"`
	WalletCreditInMinorUnit int64                    `json:"walletCreditInMinorUnit"`
	BillsSettled            int                      `json:"billsSettled"`
}

// ConfirmTransaction verifies a payment reference with the gateway and, when
// the gateway reports success, applies the paid amount to the request's
// outstanding bills and credits the wallet.
//
// A gateway timeout or error leaves no transaction in a terminal state; the
// payment stays PENDING for later reconciliation and is never assumed
// successful.
func ConfirmTransaction(db *sql.DB, verifier TransactionVerifier, membership *models.Membership, request ConfirmRequest) (*ConfirmResult, error) {
	if request.Reference == "" {
		return nil, apperrors.Validation("reference is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	verification, err := verifier.Verify(ctx, request.Reference)
	if err != nil {
		log.Printf("Gateway verification for %s failed: %v", request.Reference, err)
		// leave a non-terminal marker so reconciliation can retry later
		if recordErr := recordPendingTransaction(db, membership, request.Reference); recordErr != nil {
			log.Printf("Failed to record pending transaction %s: %v", request.Reference, recordErr)
		}
		return nil, apperrors.Conflict("payment could not be verified yet, retry later")
	}
	if !verification.Successful {
		return nil, apperrors.IllegalArgument("payment %s was not successful", request.Reference)
	}

	return ApplyTransaction(db, membership, verification)
}

// ApplyTransaction records a gateway-confirmed payment and walks the
// request's bills oldest first, allocating min(outstanding, amount left) to
// each. Whatever remains after every bill is settled stays on the wallet as
// credit; book and available balances both rise by the full confirmed amount.
//
// The operation is idempotent per transaction reference: re-processing an
// already terminal transaction mutates nothing.
func ApplyTransaction(db *sql.DB, membership *models.Membership, verification *GatewayVerification) (*ConfirmResult, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// idempotency guard: a terminal transaction must not apply twice
	existing, err := database.GetPaymentTransactionByReferenceForUpdate(tx, verification.TransactionReference)
	if err == nil && existing.Status.IsTerminal() {
		return &ConfirmResult{
			TransactionReference: existing.TransactionReference,
			Status:               existing.Status,
		}, nil
	}
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	paidAt := verification.PaidAt
	merchantReference := verification.MerchantReference
	transaction := existing
	if transaction == nil {
		transaction = &models.PaymentTransaction{
			TransactionReference: verification.TransactionReference,
			MerchantReference:    &merchantReference,
			Status:               models.TransactionPending,
		}
		if membership != nil {
			transaction.PaidByMembershipID = &membership.ID
		}
	}
	// a pending marker may carry the requested amount; the gateway figure wins
	transaction.AmountInMinorUnit = verification.AmountInMinorUnit

	paymentRequest, err := database.GetPaymentRequestByReference(tx, verification.TransactionReference)
	if err == sql.ErrNoRows {
		// no request chain resolves: record the payment for manual follow
		// up instead of dropping it
		transaction.Status = models.TransactionUnreconciled
		transaction.ConfirmedPaymentDate = &paidAt
		if err := persistTransaction(tx, transaction); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		log.Printf("Payment %s recorded as unreconciled", verification.TransactionReference)
		return &ConfirmResult{
			TransactionReference: transaction.TransactionReference,
			Status:               models.TransactionUnreconciled,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	transaction.PaymentRequestID = &paymentRequest.ID

	// serialize concurrent applications for the association on its wallet row
	wallet, err := database.GetWalletByAssociationForUpdate(tx, paymentRequest.AssociationID)
	if err != nil {
		return nil, err
	}

	bills, err := database.GetBillsByPaymentRequest(tx, paymentRequest.ID)
	if err != nil {
		return nil, err
	}

	amountLeft := verification.AmountInMinorUnit
	var allocated int64
	var settled int
	for _, bill := range bills {
		if amountLeft == 0 {
			break
		}
		applied := bill.ApplyAmount(amountLeft)
		if applied == 0 {
			continue
		}
		amountLeft -= applied
		allocated += applied
		if bill.PaymentStatus == models.PaymentPaid {
			settled++
		}
		if err := database.UpdateBillPayment(tx, bill); err != nil {
			return nil, err
		}
	}

	// allocated funds and any overpayment both belong to the association
	wallet.Credit(verification.AmountInMinorUnit)
	if err := database.UpdateWalletBalances(tx, wallet); err != nil {
		return nil, err
	}

	transaction.Status = models.TransactionConfirmed
	transaction.ConfirmedPaymentDate = &paidAt
	if err := persistTransaction(tx, transaction); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Printf("Applied payment %s: %d minor units across %d settled bills, %d credit",
		transaction.TransactionReference, allocated, settled, amountLeft)
	return &ConfirmResult{
		TransactionReference:    transaction.TransactionReference,
		Status:                  models.TransactionConfirmed,
		AllocatedInMinorUnit:    allocated,
		WalletCreditInMinorUnit: amountLeft,
		BillsSettled:            settled,
	}, nil
}

func persistTransaction(tx *sql.Tx, transaction *models.PaymentTransaction) error {
	if transaction.ID == "" {
		return database.CreatePaymentTransaction(tx, transaction)
	}
	return database.UpdatePaymentTransaction(tx, transaction)
}

// recordPendingTransaction keeps a non-terminal PENDING row for a payment
// whose gateway verification did not complete. A later confirmation picks the
// row up through the reference guard and completes it; re-recording is a
// no-op.
func recordPendingTransaction(db *sql.DB, membership *models.Membership, reference string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := database.GetPaymentTransactionByReferenceForUpdate(tx, reference); err == nil {
		return nil
	} else if err != sql.ErrNoRows {
		return err
	}

	transaction := &models.PaymentTransaction{
		TransactionReference: reference,
		Status:               models.TransactionPending,
	}
	if membership != nil {
		transaction.PaidByMembershipID = &membership.ID
	}
	if paymentRequest, err := database.GetPaymentRequestByReference(tx, reference); err == nil {
		transaction.PaymentRequestID = &paymentRequest.ID
		transaction.AmountInMinorUnit = paymentRequest.AmountInMinorUnit
	} else if err != sql.ErrNoRows {
		return err
	}

	if err := database.CreatePaymentTransaction(tx, transaction); err != nil {
		return err
	}
	return tx.Commit()
}
