package database

import (
	"database/sql"

	"github.com/uncle-tee/socialite.io/app/models"
)

const associationColumns = `id, code, name, COALESCE(type, ''), status, address, country_code, bank_code, account_number, created_at, updated_at`

func scanAssociation(row *sql.Row) (*models.Association, error) {
	association := &models.Association{}
	err := row.Scan(
		&association.ID, &association.Code, &association.Name, &association.Type,
		&association.Status, &association.Address, &association.CountryCode,
		&association.BankCode, &association.AccountNumber,
		&association.CreatedAt, &association.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return association, nil
}

func GetAssociationByCode(db *sql.DB, code string) (*models.Association, error) {
	query := `SELECT ` + associationColumns + ` FROM associations WHERE code = $1`
	return scanAssociation(db.QueryRow(query, code))
}

// GetAssociationByPortalUserAndStatus resolves the association a user belongs
// to through his memberships, filtered by association status.
func GetAssociationByPortalUserAndStatus(db *sql.DB, portalUserID string, status models.GenericStatus) (*models.Association, error) {
	query := `SELECT a.id, a.code, a.name, COALESCE(a.type, ''), a.status, a.address, a.country_code, a.bank_code, a.account_number, a.created_at, a.updated_at
			  FROM associations a
			  JOIN memberships m ON m.association_id = a.id
			  WHERE m.portal_user_id = $1 AND a.status = $2
			  ORDER BY a.created_at DESC
			  LIMIT 1`
	return scanAssociation(db.QueryRow(query, portalUserID, status))
}

// CreateAssociation inserts a pending association inside the given transaction.
func CreateAssociation(tx *sql.Tx, association *models.Association) error {
	query := `INSERT INTO associations (code, name, type, status, address, country_code, bank_code, account_number, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		association.Code, association.Name, association.Type, association.Status,
		association.Address, association.CountryCode, association.BankCode, association.AccountNumber,
	).Scan(&association.ID, &association.CreatedAt, &association.UpdatedAt)
}

// UpdateAssociationProfile updates the onboarding profile fields and status.
func UpdateAssociationProfile(tx *sql.Tx, association *models.Association) error {
	query := `UPDATE associations
			  SET name = $1, type = $2, status = $3, address = $4, country_code = $5, bank_code = $6, account_number = $7, updated_at = NOW()
			  WHERE id = $8`

	result, err := tx.Exec(query,
		association.Name, association.Type, association.Status, association.Address,
		association.CountryCode, association.BankCode, association.AccountNumber, association.ID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err == nil && rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return err
}
