package models

import "time"

// Membership represents a portal user's relationship with an association.
// A user holds at most one membership per association and account type.
type Membership struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Reference     string        `json:"reference" gorm:"uniqueIndex;not null" validate:"required"`
	PortalUserID  string        `json:"portalUserId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AssociationID string        `json:"associationId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AccountType   AccountType   `json:"accountType" gorm:"not null;type:varchar(30)" validate:"required"`
	Status        GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	PortalUser  *PortalUser  `json:"portalUser,omitempty" gorm:"foreignKey:PortalUserID;references:ID"`
	Association *Association `json:"association,omitempty" gorm:"foreignKey:AssociationID;references:ID"`
}
