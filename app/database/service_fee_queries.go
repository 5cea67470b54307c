package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uncle-tee/socialite.io/app/models"
)

// ServiceFeeFilters represents the optional search predicates for service
// fees. Zero values are omitted from the query; the set fields combine as
// AND-ed conditions in declaration order.
type ServiceFeeFilters struct {
	Status            models.GenericStatus
	Type              models.ServiceType
	Frequency         models.BillingCycle
	Name              string
	MinAmount         *int64
	MaxAmount         *int64
	StartDateAfter    time.Time
	StartDateBefore   time.Time
	DateCreatedAfter  time.Time
	DateCreatedBefore time.Time
	Limit             int
	Offset            int
}

const serviceFeeColumns = `id, code, name, description, type, cycle, amount_in_minor_unit, billing_start_date, next_billing_date, association_id, status, created_at, updated_at`

func scanServiceFee(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.ServiceFee, error) {
	fee := &models.ServiceFee{}
	err := scanner.Scan(
		&fee.ID, &fee.Code, &fee.Name, &fee.Description, &fee.Type, &fee.Cycle,
		&fee.AmountInMinorUnit, &fee.BillingStartDate, &fee.NextBillingDate,
		&fee.AssociationID, &fee.Status, &fee.CreatedAt, &fee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// CreateServiceFee inserts a service fee inside the given transaction.
func CreateServiceFee(tx *sql.Tx, fee *models.ServiceFee) error {
	query := `INSERT INTO service_fees (code, name, description, type, cycle, amount_in_minor_unit, billing_start_date, next_billing_date, association_id, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return tx.QueryRow(query,
		fee.Code, fee.Name, fee.Description, fee.Type, fee.Cycle,
		fee.AmountInMinorUnit, fee.BillingStartDate, fee.NextBillingDate,
		fee.AssociationID, fee.Status,
	).Scan(&fee.ID, &fee.CreatedAt, &fee.UpdatedAt)
}

// GetServiceFeeByCodeAndAssociation finds a fee by code scoped to the
// association, regardless of status so soft deleted fees stay queryable.
func GetServiceFeeByCodeAndAssociation(db *sql.DB, code, associationID string) (*models.ServiceFee, error) {
	query := `SELECT ` + serviceFeeColumns + ` FROM service_fees WHERE code = $1 AND association_id = $2`
	return scanServiceFee(db.QueryRow(query, code, associationID))
}

// SearchServiceFees runs the filtered, paginated fee search for an
// association and returns the page along with the unpaged total.
func SearchServiceFees(db *sql.DB, associationID string, filters ServiceFeeFilters) ([]*models.ServiceFee, int, error) {
	baseQuery := ` FROM service_fees WHERE association_id = $1`
	args := []interface{}{associationID}
	argIndex := 2

	addCondition := func(condition string, value interface{}) {
		baseQuery += fmt.Sprintf(" AND "+condition, argIndex)
		args = append(args, value)
		argIndex++
	}

	if filters.Status != "" {
		addCondition("status = $%d", filters.Status)
	}
	if filters.Type != "" {
		addCondition("type = $%d", filters.Type)
	}
	if filters.Frequency != "" {
		addCondition("cycle = $%d", filters.Frequency)
	}
	if filters.Name != "" {
		addCondition("LOWER(name) LIKE $%d", "%"+strings.ToLower(filters.Name)+"%")
	}
	if filters.MinAmount != nil {
		addCondition("amount_in_minor_unit >= $%d", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		addCondition("amount_in_minor_unit <= $%d", *filters.MaxAmount)
	}
	if !filters.StartDateAfter.IsZero() {
		addCondition("billing_start_date >= $%d", filters.StartDateAfter)
	}
	if !filters.StartDateBefore.IsZero() {
		addCondition("billing_start_date <= $%d", filters.StartDateBefore)
	}
	if !filters.DateCreatedAfter.IsZero() {
		addCondition("created_at >= $%d", filters.DateCreatedAfter)
	}
	if !filters.DateCreatedBefore.IsZero() {
		addCondition("created_at <= $%d", filters.DateCreatedBefore)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageQuery := "SELECT " + serviceFeeColumns + baseQuery +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.Query(pageQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var fees []*models.ServiceFee
	for rows.Next() {
		fee, err := scanServiceFee(rows)
		if err != nil {
			return nil, 0, err
		}
		fees = append(fees, fee)
	}
	return fees, total, rows.Err()
}

// DeactivateServiceFee soft deletes a fee; the row stays queryable by code.
func DeactivateServiceFee(db *sql.DB, feeID string) error {
	query := `UPDATE service_fees SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, models.StatusInactive, feeID)
	return err
}

// GetDueServiceFees returns active fees whose next billing date has passed.
func GetDueServiceFees(db *sql.DB, asOf time.Time) ([]*models.ServiceFee, error) {
	query := `SELECT ` + serviceFeeColumns + `
			  FROM service_fees
			  WHERE status = $1 AND cycle <> $2 AND next_billing_date <= $3
			  ORDER BY next_billing_date`

	rows, err := db.Query(query, models.StatusActive, models.CycleOneTime, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.ServiceFee
	for rows.Next() {
		fee, err := scanServiceFee(rows)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

// AdvanceNextBillingDate moves a fee's next billing date after a cycle run.
func AdvanceNextBillingDate(tx *sql.Tx, feeID string, next time.Time) error {
	query := `UPDATE service_fees SET next_billing_date = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(query, next, feeID)
	return err
}
