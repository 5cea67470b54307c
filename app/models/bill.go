package models

import "time"

// Bill represents one billing-cycle charge against a subscription.
// PaymentStatus is always derived from the paid/payable comparison.
type Bill struct {
	ID                         string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code                       string        `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	SubscriptionID             string        `json:"subscriptionId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PayableAmountInMinorUnit   int64         `json:"payableAmountInMinorUnit" gorm:"not null;type:bigint" validate:"gte=0"`
	TotalAmountPaidInMinorUnit int64         `json:"totalAmountPaidInMinorUnit" gorm:"not null;default:0;type:bigint" validate:"gte=0"`
	PaymentStatus              PaymentStatus `json:"paymentStatus" gorm:"not null;default:'NOT_PAID';index;type:varchar(20)"`
	CurrencyCode               string        `json:"currencyCode" gorm:"not null;default:'NGN';type:varchar(3)"`
	Status                     GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt                  time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt                  time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	Subscription *Subscription `json:"subscription,omitempty" gorm:"foreignKey:SubscriptionID;references:ID"`
}

// Outstanding returns how much of the bill is still unpaid.
func (b *Bill) Outstanding() int64 {
	remaining := b.PayableAmountInMinorUnit - b.TotalAmountPaidInMinorUnit
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ApplyAmount allocates up to available minor units to the bill, returns the
// amount actually allocated and refreshes the derived payment status.
func (b *Bill) ApplyAmount(available int64) int64 {
	allocated := b.Outstanding()
	if available < allocated {
		allocated = available
	}
	b.TotalAmountPaidInMinorUnit += allocated
	b.RefreshPaymentStatus()
	return allocated
}

// RefreshPaymentStatus recomputes PaymentStatus from the amount comparison.
func (b *Bill) RefreshPaymentStatus() {
	switch {
	case b.TotalAmountPaidInMinorUnit >= b.PayableAmountInMinorUnit:
		b.PaymentStatus = PaymentPaid
	case b.TotalAmountPaidInMinorUnit > 0:
		b.PaymentStatus = PaymentPartiallyPaid
	default:
		b.PaymentStatus = PaymentNotPaid
	}
}
