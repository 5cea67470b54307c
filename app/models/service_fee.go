package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// CustomDate parses and renders dates in DD/MM/YYYY format as used by the
// onboarding and billing request payloads.
type CustomDate struct {
	time.Time
}

// DateLayout is the DD/MM/YYYY wire format for request payloads and
// query string date bounds.
const DateLayout = "02/01/2006"

// UnmarshalJSON parses dates in DD/MM/YYYY format.
func (cd *CustomDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		cd.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	cd.Time = t
	return nil
}

// MarshalJSON formats dates in DD/MM/YYYY format.
func (cd CustomDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, cd.Time.Format(DateLayout))), nil
}

// Scan implements the Scanner interface for database reading.
func (cd *CustomDate) Scan(value interface{}) error {
	if value == nil {
		cd.Time = time.Time{}
		return nil
	}
	if t, ok := value.(time.Time); ok {
		cd.Time = t
		return nil
	}
	return fmt.Errorf("cannot scan %T into CustomDate", value)
}

// Value implements the Valuer interface for database writing.
func (cd CustomDate) Value() (driver.Value, error) {
	return cd.Time, nil
}

// ServiceFee represents a billable recurring charge an association levies on
// its members. Amounts are stored in integer minor units.
type ServiceFee struct {
	ID                string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code              string        `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Name              string        `json:"name" gorm:"not null" validate:"required"`
	Description       *string       `json:"description,omitempty" gorm:"type:text"`
	Type              ServiceType   `json:"type" gorm:"not null;type:varchar(30)" validate:"required"`
	Cycle             BillingCycle  `json:"cycle" gorm:"not null;type:varchar(20)" validate:"required"`
	AmountInMinorUnit int64         `json:"amountInMinorUnit" gorm:"not null;type:bigint" validate:"gte=0"`
	BillingStartDate  time.Time     `json:"billingStartDate" gorm:"not null;type:date"`
	NextBillingDate   time.Time     `json:"nextBillingDate" gorm:"not null;index;type:date"`
	AssociationID     string        `json:"associationId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status            GenericStatus `json:"status" gorm:"not null;default:'ACTIVE';index;type:varchar(30)"`
	CreatedAt         time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	Association   *Association    `json:"association,omitempty" gorm:"foreignKey:AssociationID;references:ID"`
	Subscriptions []*Subscription `json:"subscriptions,omitempty" gorm:"foreignKey:ServiceFeeID;references:ID"`
}

// NextCycleDate returns the billing date that follows from for the fee's cycle.
func (sf *ServiceFee) NextCycleDate(from time.Time) time.Time {
	switch sf.Cycle {
	case CycleWeekly:
		return from.AddDate(0, 0, 7)
	case CycleMonthly:
		return from.AddDate(0, 1, 0)
	case CycleQuarterly:
		return from.AddDate(0, 3, 0)
	case CycleAnnually:
		return from.AddDate(1, 0, 0)
	default:
		// one time fees never bill again
		return from.AddDate(100, 0, 0)
	}
}
