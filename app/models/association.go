package models

import "time"

// Association represents a tenant organisation that owns memberships,
// service fees and a wallet. It is created PENDING_ACTIVATION at onboarding
// and becomes ACTIVE once the profile is complete.
type Association struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code          string          `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Name          string          `json:"name" gorm:"not null" validate:"required"`
	Type          AssociationType `json:"type" gorm:"type:varchar(30)" validate:"required"`
	Status        GenericStatus   `json:"status" gorm:"not null;default:'PENDING_ACTIVATION';index;type:varchar(30)"`
	Address       *string         `json:"address,omitempty" gorm:"type:text"`
	CountryCode   *string         `json:"countryCode,omitempty" gorm:"type:varchar(5)"`
	BankCode      *string         `json:"bankCode,omitempty" gorm:"type:varchar(20)"`
	AccountNumber *string         `json:"accountNumber,omitempty" gorm:"type:varchar(34)"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CanActivate reports whether the onboarding profile carries everything an
// active association must have.
func (a *Association) CanActivate() bool {
	return a.Name != "" && a.Type != "" &&
		a.Address != nil && *a.Address != "" &&
		a.CountryCode != nil && *a.CountryCode != "" &&
		a.BankCode != nil && *a.BankCode != "" &&
		a.AccountNumber != nil && *a.AccountNumber != ""
}
