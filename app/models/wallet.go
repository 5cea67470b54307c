package models

import "time"

// Wallet represents an association's monetary ledger. Balances are held in
// integer minor units and move only inside the database transaction that
// records the payment transaction being applied.
type Wallet struct {
	ID                          string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Reference                   string        `json:"reference" gorm:"uniqueIndex;not null" validate:"required"`
	AssociationID               string        `json:"associationId" gorm:"not null;uniqueIndex;type:uuid" validate:"required,uuid"`
	BookBalanceInMinorUnit      int64         `json:"bookBalanceInMinorUnit" gorm:"not null;default:0;type:bigint"`
	AvailableBalanceInMinorUnit int64         `json:"availableBalanceInMinorUnit" gorm:"not null;default:0;type:bigint"`
	Status                      GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt                   time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt                   time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Credit moves both balances together on settlement.
func (w *Wallet) Credit(amountInMinorUnit int64) {
	w.BookBalanceInMinorUnit += amountInMinorUnit
	w.AvailableBalanceInMinorUnit += amountInMinorUnit
}
