package database

import (
	"database/sql"

	"github.com/uncle-tee/socialite.io/app/models"
)

func CreateRole(db *sql.DB, role *models.Role) error {
	query := `INSERT INTO roles (code, name, association_id, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, role.Code, role.Name, role.AssociationID, role.Status).
		Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
}

func GetRoleByCodeAndAssociation(db *sql.DB, code, associationID string) (*models.Role, error) {
	role := &models.Role{}
	query := `SELECT id, code, name, association_id, status, created_at, updated_at
			  FROM roles
			  WHERE code = $1 AND association_id = $2 AND status = $3`

	err := db.QueryRow(query, code, associationID, models.StatusActive).Scan(
		&role.ID, &role.Code, &role.Name, &role.AssociationID, &role.Status,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return role, nil
}

// DeactivateRole soft deletes a role; the row stays queryable by id.
func DeactivateRole(db *sql.DB, roleID string) error {
	query := `UPDATE roles SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, models.StatusInactive, roleID)
	return err
}

// CreateMembershipRole assigns a role to a membership inside the transaction.
func CreateMembershipRole(tx *sql.Tx, membershipID, roleID string) error {
	query := `INSERT INTO membership_roles (membership_id, role_id, status, created_at)
			  VALUES ($1, $2, $3, NOW())
			  ON CONFLICT (membership_id, role_id) DO UPDATE SET status = $3`
	_, err := tx.Exec(query, membershipID, roleID, models.StatusActive)
	return err
}

// MembershipRoleRow is the flattened projection for the role listing.
type MembershipRoleRow struct {
	RoleCode            string             `json:"roleCode"`
	RoleName            string             `json:"roleName"`
	MembershipReference string             `json:"membershipReference"`
	AccountType         models.AccountType `json:"accountType"`
	FirstName           string             `json:"firstName"`
	LastName            string             `json:"lastName"`
	Email               string             `json:"email"`
}

// GetMembershipRolesByAssociation lists role assignments scoped by the
// association, optionally filtered by membership account type.
func GetMembershipRolesByAssociation(db *sql.DB, associationID string, accountType models.AccountType) ([]*MembershipRoleRow, error) {
	query := `SELECT r.code, r.name, m.reference, m.account_type, u.first_name, u.last_name, u.email
			  FROM membership_roles mr
			  JOIN roles r ON r.id = mr.role_id
			  JOIN memberships m ON m.id = mr.membership_id
			  JOIN portal_users u ON u.id = m.portal_user_id
			  WHERE m.association_id = $1
			    AND mr.status = $2 AND r.status = $2 AND m.status = $2`

	args := []interface{}{associationID, models.StatusActive}
	if accountType != "" {
		query += ` AND m.account_type = $3`
		args = append(args, accountType)
	}
	query += ` ORDER BY r.name, u.first_name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*MembershipRoleRow
	for rows.Next() {
		row := &MembershipRoleRow{}
		err := rows.Scan(&row.RoleCode, &row.RoleName, &row.MembershipReference,
			&row.AccountType, &row.FirstName, &row.LastName, &row.Email)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
