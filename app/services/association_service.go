package services

import (
	"database/sql"
	"log"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// OnboardRequest carries the association onboarding payload.
type OnboardRequest struct {
	Name string                 `json:"name"`
	Type models.AssociationType `json:"type"`
	// the onboarding clients send this flag as the strings "true"/"false"
	ActivateAssociation string           `json:"activateAssociation"`
	Address             *AddressPayload  `json:"address"`
	BankInfo            *BankInfoPayload `json:"bankInfo"`
}

// WantsActivation reports whether the payload requests activation.
func (r OnboardRequest) WantsActivation() bool {
	return r.ActivateAssociation == "true"
}

type AddressPayload struct {
	Address     string `json:"address"`
	CountryCode string `json:"countryCode"`
}

type BankInfoPayload struct {
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
}

// OnboardResult is what the onboarding endpoint reports back.
type OnboardResult struct {
	Association     *models.Association `json:"association"`
	WalletReference string              `json:"walletReference,omitempty"`
}

// Onboard creates or updates the principal's pending association. When
// activation is requested and the profile is complete, the association is
// activated and its wallet is created exactly once. Calling activation twice
// is a no-op that reports the existing wallet reference.
func Onboard(db *sql.DB, portalUser *models.PortalUser, request OnboardRequest) (*OnboardResult, error) {
	association, err := database.GetAssociationByPortalUserAndStatus(db, portalUser.ID, models.StatusPendingActivation)
	if err == sql.ErrNoRows {
		// an already active association keeps onboarding idempotent
		association, err = database.GetAssociationByPortalUserAndStatus(db, portalUser.ID, models.StatusActive)
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("no association found for onboarding")
		}
	}
	if err != nil {
		return nil, err
	}

	applyProfile(association, request)

	if request.WantsActivation() {
		if !association.CanActivate() {
			return nil, apperrors.Validation("address and bank information are required to activate an association")
		}
		association.Status = models.StatusActive
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := database.UpdateAssociationProfile(tx, association); err != nil {
		return nil, err
	}

	result := &OnboardResult{Association: association}
	if association.Status == models.StatusActive {
		wallet, err := ensureWallet(tx, association)
		if err != nil {
			return nil, err
		}
		result.WalletReference = wallet.Reference
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// ensureWallet returns the association's wallet, creating it with zero
// balances on first activation. The check runs inside the activation
// transaction: the profile update above already holds the association row
// lock, so concurrent activations serialize before reaching this point and
// the second caller sees the first caller's wallet.
func ensureWallet(tx *sql.Tx, association *models.Association) (*models.Wallet, error) {
	existing, err := database.GetWalletByAssociationForUpdate(tx, association.ID)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	wallet := &models.Wallet{
		Reference:     NewReference("WAL"),
		AssociationID: association.ID,
		Status:        models.StatusActive,
	}
	if err := database.CreateWallet(tx, wallet); err != nil {
		return nil, err
	}
	log.Printf("Created wallet %s for association %s", wallet.Reference, association.Code)
	return wallet, nil
}

func applyProfile(association *models.Association, request OnboardRequest) {
	if request.Name != "" {
		association.Name = request.Name
	}
	if request.Type != "" {
		association.Type = request.Type
	}
	if request.Address != nil {
		if request.Address.Address != "" {
			association.Address = &request.Address.Address
		}
		if request.Address.CountryCode != "" {
			association.CountryCode = &request.Address.CountryCode
		}
	}
	if request.BankInfo != nil {
		if request.BankInfo.BankCode != "" {
			association.BankCode = &request.BankInfo.BankCode
		}
		if request.BankInfo.AccountNumber != "" {
			association.AccountNumber = &request.BankInfo.AccountNumber
		}
	}
}
