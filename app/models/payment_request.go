package models

import "time"

// PaymentRequest represents a request to pay one or more invoices. It is
// created before a gateway transaction is confirmed and is settled by exactly
// one terminal payment transaction.
type PaymentRequest struct {
	ID                string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Reference         string        `json:"reference" gorm:"uniqueIndex;not null" validate:"required"`
	AssociationID     string        `json:"associationId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AmountInMinorUnit int64         `json:"amountInMinorUnit" gorm:"not null;type:bigint" validate:"gte=0"`
	Status            GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt         time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	Invoices []*Invoice `json:"invoices,omitempty" gorm:"foreignKey:PaymentRequestID;references:ID"`
}
