package services

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// SignUpRequest carries the sign-up payload. Signing up creates the user,
// their pending association and their executive membership of it.
type SignUpRequest struct {
	FirstName       string                 `json:"firstName"`
	LastName        string                 `json:"lastName"`
	Email           string                 `json:"email"`
	PhoneNumber     string                 `json:"phoneNumber"`
	Password        string                 `json:"password"`
	AssociationName string                 `json:"associationName"`
	AssociationType models.AssociationType `json:"associationType"`
}

func (r SignUpRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return apperrors.Validation("email and password are required")
	}
	if len(r.Password) < 8 {
		return apperrors.Validation("password must be at least 8 characters")
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return apperrors.Validation("firstName and lastName are required")
	}
	if strings.TrimSpace(r.AssociationName) == "" {
		return apperrors.Validation("associationName is required")
	}
	return nil
}

// SignUp registers a principal user with a pending association, all in one
// transaction, and sends the welcome mail best effort.
func SignUp(db *sql.DB, smtpConfig config.SMTPConfig, request SignUpRequest) (*models.Membership, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), 14)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user := &models.PortalUser{
		Email:       strings.ToLower(strings.TrimSpace(request.Email)),
		Password:    string(hashedPassword),
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		PhoneNumber: request.PhoneNumber,
		Status:      models.StatusActive,
	}
	if err := database.CreatePortalUser(tx, user); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, apperrors.Conflict("a user with email %s already exists", user.Email)
		}
		return nil, err
	}

	association := &models.Association{
		Code:   NewReference("ASC"),
		Name:   request.AssociationName,
		Type:   request.AssociationType,
		Status: models.StatusPendingActivation,
	}
	if err := database.CreateAssociation(tx, association); err != nil {
		return nil, err
	}

	membership := &models.Membership{
		Reference:     NewReference("MBR"),
		PortalUserID:  user.ID,
		AssociationID: association.ID,
		AccountType:   models.ExecutiveAccount,
		Status:        models.StatusActive,
	}
	if err := database.CreateMembership(tx, membership); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	SendWelcomeEmail(smtpConfig, user, association.Name)

	membership.PortalUser = user
	membership.Association = association
	return membership, nil
}
