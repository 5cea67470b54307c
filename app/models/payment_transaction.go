package models

import "time"

// PaymentTransaction represents a confirmed or failed payment attempt against
// a payment request. Terminal transactions are never mutated, only superseded
// by new transactions for new requests.
type PaymentTransaction struct {
	ID                   string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PaymentRequestID     *string           `json:"paymentRequestId,omitempty" gorm:"index;type:uuid"`
	AmountInMinorUnit    int64             `json:"amountInMinorUnit" gorm:"not null;type:bigint" validate:"gte=0"`
	TransactionReference string            `json:"transactionReference" gorm:"uniqueIndex;not null" validate:"required"`
	MerchantReference    *string           `json:"merchantReference,omitempty" gorm:"index"`
	PaidByMembershipID   *string           `json:"paidByMembershipId,omitempty" gorm:"index;type:uuid"`
	ConfirmedPaymentDate *time.Time        `json:"confirmedPaymentDate,omitempty" gorm:"index"`
	Status               TransactionStatus `json:"status" gorm:"not null;default:'PENDING';index;type:varchar(20)"`
	CreatedAt            time.Time         `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt            time.Time         `json:"updatedAt" gorm:"autoUpdateTime"`

	PaymentRequest *PaymentRequest `json:"paymentRequest,omitempty" gorm:"foreignKey:PaymentRequestID;references:ID"`
	PaidBy         *Membership     `json:"paidBy,omitempty" gorm:"foreignKey:PaidByMembershipID;references:ID"`
}
