package database

import (
	"database/sql"

	"github.com/uncle-tee/socialite.io/app/models"
)

func GetPortalUserByEmail(db *sql.DB, email string) (*models.PortalUser, error) {
	user := &models.PortalUser{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone_number, ''), status, created_at, updated_at
			  FROM portal_users WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.PhoneNumber, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetPortalUserByID(db *sql.DB, userID string) (*models.PortalUser, error) {
	user := &models.PortalUser{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone_number, ''), status, created_at, updated_at
			  FROM portal_users WHERE id = $1`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.PhoneNumber, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePortalUser inserts a portal user inside the given transaction. The
// password is expected to be hashed already.
func CreatePortalUser(tx *sql.Tx, user *models.PortalUser) error {
	query := `INSERT INTO portal_users (email, password, first_name, last_name, phone_number, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query, user.Email, user.Password, user.FirstName, user.LastName,
		user.PhoneNumber, user.Status).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func UpdatePortalUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE portal_users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}
