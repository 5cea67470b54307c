package database

import (
	"database/sql"

	"github.com/uncle-tee/socialite.io/app/models"
)

const walletColumns = `id, reference, association_id, book_balance_in_minor_unit, available_balance_in_minor_unit, status, created_at, updated_at`

func scanWallet(row *sql.Row) (*models.Wallet, error) {
	wallet := &models.Wallet{}
	err := row.Scan(
		&wallet.ID, &wallet.Reference, &wallet.AssociationID,
		&wallet.BookBalanceInMinorUnit, &wallet.AvailableBalanceInMinorUnit,
		&wallet.Status, &wallet.CreatedAt, &wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// GetWalletByAssociationForUpdate locks the association's wallet row so
// concurrent payment applications and activations serialize on it.
func GetWalletByAssociationForUpdate(tx *sql.Tx, associationID string) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE association_id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(query, associationID))
}

// CreateWallet inserts a zero balance wallet inside the transaction.
func CreateWallet(tx *sql.Tx, wallet *models.Wallet) error {
	query := `INSERT INTO wallets (reference, association_id, book_balance_in_minor_unit, available_balance_in_minor_unit, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		wallet.Reference, wallet.AssociationID,
		wallet.BookBalanceInMinorUnit, wallet.AvailableBalanceInMinorUnit, wallet.Status,
	).Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt)
}

// UpdateWalletBalances persists new balances inside the transaction that
// recorded the payment application.
func UpdateWalletBalances(tx *sql.Tx, wallet *models.Wallet) error {
	query := `UPDATE wallets
			  SET book_balance_in_minor_unit = $1, available_balance_in_minor_unit = $2, updated_at = NOW()
			  WHERE id = $3`
	_, err := tx.Exec(query, wallet.BookBalanceInMinorUnit, wallet.AvailableBalanceInMinorUnit, wallet.ID)
	return err
}
