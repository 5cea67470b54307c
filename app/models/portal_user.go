package models

import "time"

// PortalUser represents a signed-up person who can belong to associations.
type PortalUser struct {
	ID          string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email       string        `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password    string        `json:"-" gorm:"not null" validate:"required,min=8"`
	FirstName   string        `json:"firstName" gorm:"not null" validate:"required"`
	LastName    string        `json:"lastName" gorm:"not null" validate:"required"`
	PhoneNumber string        `json:"phoneNumber,omitempty" gorm:"type:varchar(20)"`
	Status      GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt   time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	Memberships []*Membership `json:"memberships,omitempty" gorm:"foreignKey:PortalUserID;references:ID"`
}

// FullName returns the user's display name.
func (u *PortalUser) FullName() string {
	return u.FirstName + " " + u.LastName
}
