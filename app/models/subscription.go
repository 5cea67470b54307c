package models

import "time"

// Subscription represents a membership's enrollment in a service fee.
// There is exactly one subscription per (service fee, membership) pair.
type Subscription struct {
	ID           string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code         string        `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	ServiceFeeID string        `json:"serviceFeeId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	MembershipID string        `json:"membershipId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status       GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	ServiceFee *ServiceFee `json:"serviceFee,omitempty" gorm:"foreignKey:ServiceFeeID;references:ID"`
	Membership *Membership `json:"membership,omitempty" gorm:"foreignKey:MembershipID;references:ID"`
}
