package services

import (
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// ServiceFeeRequest carries the create payload for a service fee.
type ServiceFeeRequest struct {
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	Type              models.ServiceType  `json:"type"`
	Cycle             models.BillingCycle `json:"cycle"`
	AmountInMinorUnit int64               `json:"amountInMinorUnit"`
	BillingStartDate  models.CustomDate   `json:"billingStartDate"`
	// membership references; nil means every active member account
	Recipients []string `json:"recipients"`
}

func (r ServiceFeeRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.Validation("service fee name is required")
	}
	if r.AmountInMinorUnit < 0 {
		return apperrors.Validation("amountInMinorUnit must not be negative")
	}
	if r.Cycle == "" || r.Type == "" {
		return apperrors.Validation("cycle and type are required")
	}
	return nil
}

// CreateServiceFee creates the fee plus one subscription per resolved
// recipient, and the opening bill for each subscription, all in one database
// transaction so a failure leaves no partial recipient set.
//
// Recipient references that do not resolve to an active member account of the
// association fail the whole request rather than being silently dropped.
func CreateServiceFee(db *sql.DB, association *models.Association, request ServiceFeeRequest) (*models.ServiceFee, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	var members []*models.Membership
	var err error
	if request.Recipients != nil {
		members, err = database.GetMembershipsByReferencesAndAccountType(db, association.ID, request.Recipients, models.MemberAccount)
		if err != nil {
			return nil, err
		}
		if len(members) != len(request.Recipients) {
			return nil, apperrors.IllegalArgument("one or more recipients are not active members of this association")
		}
	} else {
		members, err = database.GetActiveMembershipsByAssociationAndAccountType(db, association.ID, models.MemberAccount)
		if err != nil {
			return nil, err
		}
	}

	billingStart := request.BillingStartDate.Time
	if billingStart.IsZero() {
		billingStart = time.Now()
	}

	description := request.Description
	fee := &models.ServiceFee{
		Code:              NewReference("FEE"),
		Name:              request.Name,
		Description:       &description,
		Type:              request.Type,
		Cycle:             request.Cycle,
		AmountInMinorUnit: request.AmountInMinorUnit,
		BillingStartDate:  billingStart,
		AssociationID:     association.ID,
		Status:            models.StatusActive,
	}
	fee.NextBillingDate = fee.NextCycleDate(billingStart)

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := database.CreateServiceFee(tx, fee); err != nil {
		return nil, err
	}

	for _, member := range members {
		subscription := &models.Subscription{
			Code:         NewReference("SUB"),
			ServiceFeeID: fee.ID,
			MembershipID: member.ID,
			Status:       models.StatusActive,
		}
		if err := database.CreateSubscription(tx, subscription); err != nil {
			return nil, err
		}

		bill := &models.Bill{
			Code:                     NewReference("BIL"),
			SubscriptionID:           subscription.ID,
			PayableAmountInMinorUnit: fee.AmountInMinorUnit,
			PaymentStatus:            models.PaymentNotPaid,
			CurrencyCode:             "NGN",
			Status:                   models.StatusActive,
		}
		if err := database.CreateBill(tx, bill); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Printf("Created service fee %s with %d subscriptions", fee.Code, len(members))
	return fee, nil
}
