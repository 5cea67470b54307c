package database

import (
	"database/sql"
	"time"

	"github.com/uncle-tee/socialite.io/app/models"
)

// CreateSubscription inserts a subscription inside the given transaction.
func CreateSubscription(tx *sql.Tx, subscription *models.Subscription) error {
	query := `INSERT INTO subscriptions (code, service_fee_id, membership_id, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		subscription.Code, subscription.ServiceFeeID, subscription.MembershipID, subscription.Status,
	).Scan(&subscription.ID, &subscription.CreatedAt, &subscription.UpdatedAt)
}

// CountSubscriptionsByServiceFeeAndStatus counts a fee's subscriptions.
func CountSubscriptionsByServiceFeeAndStatus(db *sql.DB, serviceFeeID string, status models.GenericStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM subscriptions WHERE service_fee_id = $1 AND status = $2`
	err := db.QueryRow(query, serviceFeeID, status).Scan(&count)
	return count, err
}

// GetActiveSubscriptionsByServiceFee lists a fee's active subscriptions.
func GetActiveSubscriptionsByServiceFee(db *sql.DB, serviceFeeID string) ([]*models.Subscription, error) {
	query := `SELECT id, code, service_fee_id, membership_id, status, created_at, updated_at
			  FROM subscriptions
			  WHERE service_fee_id = $1 AND status = $2
			  ORDER BY created_at`

	rows, err := db.Query(query, serviceFeeID, models.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		subscription := &models.Subscription{}
		err := rows.Scan(
			&subscription.ID, &subscription.Code, &subscription.ServiceFeeID,
			&subscription.MembershipID, &subscription.Status,
			&subscription.CreatedAt, &subscription.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, subscription)
	}
	return subscriptions, rows.Err()
}

// SubscriptionSummaryRow is the flattened projection for a fee's
// subscription listing: who subscribed and how their latest bill stands.
type SubscriptionSummaryRow struct {
	SubscriptionCode string               `json:"subscriptionCode"`
	FirstName        string               `json:"firstName"`
	LastName         string               `json:"lastName"`
	PhoneNumber      string               `json:"phoneNumber"`
	Email            string               `json:"email"`
	PaymentStatus    models.PaymentStatus `json:"paymentStatus"`
	PaymentDate      *time.Time           `json:"paymentDate,omitempty"`
}

// GetSubscriptionSummariesByServiceFee returns the paginated subscription
// summary page for a fee along with the unpaged total.
func GetSubscriptionSummariesByServiceFee(db *sql.DB, serviceFeeID string, limit, offset int) ([]*SubscriptionSummaryRow, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM subscriptions WHERE service_fee_id = $1 AND status = $2`
	if err := db.QueryRow(countQuery, serviceFeeID, models.StatusActive).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT s.code, u.first_name, u.last_name, COALESCE(u.phone_number, ''), u.email,
			  COALESCE(b.payment_status, 'NOT_PAID'), b.updated_at
			  FROM subscriptions s
			  JOIN memberships m ON m.id = s.membership_id
			  JOIN portal_users u ON u.id = m.portal_user_id
			  LEFT JOIN LATERAL (
				  SELECT payment_status, updated_at
				  FROM bills
				  WHERE subscription_id = s.id
				  ORDER BY created_at DESC, id DESC
				  LIMIT 1
			  ) b ON true
			  WHERE s.service_fee_id = $1 AND s.status = $2
			  ORDER BY s.id DESC
			  LIMIT $3 OFFSET $4`

	rows, err := db.Query(query, serviceFeeID, models.StatusActive, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*SubscriptionSummaryRow
	for rows.Next() {
		summary := &SubscriptionSummaryRow{}
		err := rows.Scan(
			&summary.SubscriptionCode, &summary.FirstName, &summary.LastName,
			&summary.PhoneNumber, &summary.Email, &summary.PaymentStatus, &summary.PaymentDate,
		)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, rows.Err()
}
