package models

import "time"

// Invoice groups one or more bills into a payable unit.
type Invoice struct {
	ID                string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code              string        `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	AssociationID     string        `json:"associationId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PaymentRequestID  *string       `json:"paymentRequestId,omitempty" gorm:"index;type:uuid"`
	AmountInMinorUnit int64         `json:"amountInMinorUnit" gorm:"not null;type:bigint" validate:"gte=0"`
	PaymentStatus     PaymentStatus `json:"paymentStatus" gorm:"not null;default:'NOT_PAID';index;type:varchar(20)"`
	Status            GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt         time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	Bills []*Bill `json:"bills,omitempty" gorm:"many2many:bill_invoices;"`
}

// BillInvoice joins a bill to an invoice.
type BillInvoice struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	BillID    string    `json:"billId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	InvoiceID string    `json:"invoiceId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
