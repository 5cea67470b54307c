package services

import (
	"database/sql"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// EnrollMemberRequest carries the member enrollment payload. Role codes are
// optional and must name active roles of the association.
type EnrollMemberRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Roles       []string `json:"roles"`
}

func (r EnrollMemberRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.Validation("email is required")
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return apperrors.Validation("firstName and lastName are required")
	}
	return nil
}

// EnrollMember gives a person a member account in the association. An
// existing portal user is reused by email; a new one is created with a
// placeholder password the member resets on first login. Requested roles are
// assigned in the same transaction.
func EnrollMember(db *sql.DB, smtpConfig config.SMTPConfig, association *models.Association, request EnrollMemberRequest) (*models.Membership, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	roles := make([]*models.Role, 0, len(request.Roles))
	for _, code := range request.Roles {
		role, err := database.GetRoleByCodeAndAssociation(db, code, association.ID)
		if err == sql.ErrNoRows {
			return nil, apperrors.IllegalArgument("role with code %s cannot be found", code)
		}
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := database.GetPortalUserByEmail(db, email)
	if err == sql.ErrNoRows {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), 14)
		if err != nil {
			return nil, err
		}
		user = &models.PortalUser{
			Email:       email,
			Password:    string(hashedPassword),
			FirstName:   request.FirstName,
			LastName:    request.LastName,
			PhoneNumber: request.PhoneNumber,
			Status:      models.StatusActive,
		}
		if err := database.CreatePortalUser(tx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	membership := &models.Membership{
		Reference:     NewReference("MBR"),
		PortalUserID:  user.ID,
		AssociationID: association.ID,
		AccountType:   models.MemberAccount,
		Status:        models.StatusActive,
	}
	if err := database.CreateMembership(tx, membership); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, apperrors.Conflict("%s is already a member of this association", email)
		}
		return nil, err
	}

	for _, role := range roles {
		if err := database.CreateMembershipRole(tx, membership.ID, role.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	SendWelcomeEmail(smtpConfig, user, association.Name)
	log.Printf("Enrolled member %s in association %s", membership.Reference, association.Code)

	membership.PortalUser = user
	return membership, nil
}
