package database

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/uncle-tee/socialite.io/app/models"
)

// CreateMembership inserts a membership inside the given transaction.
func CreateMembership(tx *sql.Tx, membership *models.Membership) error {
	query := `INSERT INTO memberships (reference, portal_user_id, association_id, account_type, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		membership.Reference, membership.PortalUserID, membership.AssociationID,
		membership.AccountType, membership.Status,
	).Scan(&membership.ID, &membership.CreatedAt, &membership.UpdatedAt)
}

// GetMembership finds a user's membership of an association regardless of
// account type, preferring the executive account.
func GetMembership(db *sql.DB, portalUserID, associationID string) (*models.Membership, error) {
	membership := &models.Membership{}
	query := `SELECT id, reference, portal_user_id, association_id, account_type, status, created_at, updated_at
			  FROM memberships
			  WHERE portal_user_id = $1 AND association_id = $2 AND status = $3
			  ORDER BY CASE account_type WHEN 'EXECUTIVE_ACCOUNT' THEN 0 ELSE 1 END
			  LIMIT 1`

	err := db.QueryRow(query, portalUserID, associationID, models.StatusActive).Scan(
		&membership.ID, &membership.Reference, &membership.PortalUserID,
		&membership.AssociationID, &membership.AccountType, &membership.Status,
		&membership.CreatedAt, &membership.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// GetMembershipsByReferencesAndAccountType resolves membership references to
// active memberships of the association with the given account type.
// References that do not resolve are simply absent from the result.
func GetMembershipsByReferencesAndAccountType(db *sql.DB, associationID string, references []string, accountType models.AccountType) ([]*models.Membership, error) {
	if len(references) == 0 {
		return nil, nil
	}
	query := `SELECT id, reference, portal_user_id, association_id, account_type, status, created_at, updated_at
			  FROM memberships
			  WHERE association_id = $1 AND account_type = $2 AND status = $3 AND reference = ANY($4)`

	rows, err := db.Query(query, associationID, accountType, models.StatusActive, pq.Array(references))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMemberships(rows)
}

// GetActiveMembershipsByAssociationAndAccountType lists every active
// membership of the association with the given account type.
func GetActiveMembershipsByAssociationAndAccountType(db *sql.DB, associationID string, accountType models.AccountType) ([]*models.Membership, error) {
	query := `SELECT id, reference, portal_user_id, association_id, account_type, status, created_at, updated_at
			  FROM memberships
			  WHERE association_id = $1 AND account_type = $2 AND status = $3
			  ORDER BY created_at`

	rows, err := db.Query(query, associationID, accountType, models.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMemberships(rows)
}

// MemberRow is the flattened projection for the association member listing.
type MemberRow struct {
	MembershipReference string             `json:"membershipReference"`
	AccountType         models.AccountType `json:"accountType"`
	FirstName           string             `json:"firstName"`
	LastName            string             `json:"lastName"`
	Email               string             `json:"email"`
	PhoneNumber         string             `json:"phoneNumber"`
	Status              string             `json:"status"`
}

// GetMemberRowsByAssociation returns the paginated member listing for an
// association along with the unpaged total.
func GetMemberRowsByAssociation(db *sql.DB, associationID string, limit, offset int) ([]*MemberRow, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM memberships WHERE association_id = $1 AND status = $2`
	if err := db.QueryRow(countQuery, associationID, models.StatusActive).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT m.reference, m.account_type, u.first_name, u.last_name, u.email,
			  COALESCE(u.phone_number, ''), m.status
			  FROM memberships m
			  JOIN portal_users u ON u.id = m.portal_user_id
			  WHERE m.association_id = $1 AND m.status = $2
			  ORDER BY m.id DESC
			  LIMIT $3 OFFSET $4`

	rows, err := db.Query(query, associationID, models.StatusActive, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []*MemberRow
	for rows.Next() {
		member := &MemberRow{}
		err := rows.Scan(&member.MembershipReference, &member.AccountType,
			&member.FirstName, &member.LastName, &member.Email,
			&member.PhoneNumber, &member.Status)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, member)
	}
	return members, total, rows.Err()
}

func collectMemberships(rows *sql.Rows) ([]*models.Membership, error) {
	var memberships []*models.Membership
	for rows.Next() {
		membership := &models.Membership{}
		err := rows.Scan(
			&membership.ID, &membership.Reference, &membership.PortalUserID,
			&membership.AssociationID, &membership.AccountType, &membership.Status,
			&membership.CreatedAt, &membership.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, membership)
	}
	return memberships, rows.Err()
}
