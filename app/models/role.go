package models

import "time"

// Role represents an association-scoped role (e.g. treasurer, secretary).
type Role struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code          string        `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Name          string        `json:"name" gorm:"not null" validate:"required"`
	AssociationID string        `json:"associationId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status        GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// MembershipRole assigns a role to a membership.
type MembershipRole struct {
	ID           string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	MembershipID string        `json:"membershipId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	RoleID       string        `json:"roleId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status       GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"autoCreateTime"`

	Membership *Membership `json:"membership,omitempty" gorm:"foreignKey:MembershipID;references:ID"`
	Role       *Role       `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}
