package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates missing tables and applies schema updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
		`CREATE TABLE IF NOT EXISTS portal_users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone_number VARCHAR(20),
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS associations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(40) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(30),
			status VARCHAR(30) NOT NULL DEFAULT 'PENDING_ACTIVATION',
			address TEXT,
			country_code VARCHAR(5),
			bank_code VARCHAR(20),
			account_number VARCHAR(34),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS memberships (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			reference VARCHAR(40) NOT NULL UNIQUE,
			portal_user_id UUID NOT NULL REFERENCES portal_users(id),
			association_id UUID NOT NULL REFERENCES associations(id),
			account_type VARCHAR(30) NOT NULL,
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (portal_user_id, association_id, account_type)
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(40) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL,
			association_id UUID NOT NULL REFERENCES associations(id),
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS membership_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			membership_id UUID NOT NULL REFERENCES memberships(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (membership_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS service_fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(40) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			type VARCHAR(30) NOT NULL,
			cycle VARCHAR(20) NOT NULL,
			amount_in_minor_unit BIGINT NOT NULL CHECK (amount_in_minor_unit >= 0),
			billing_start_date DATE NOT NULL,
			next_billing_date DATE NOT NULL,
			association_id UUID NOT NULL REFERENCES associations(id),
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(40) NOT NULL UNIQUE,
			service_fee_id UUID NOT NULL REFERENCES service_fees(id),
			membership_id UUID NOT NULL REFERENCES memberships(id),
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (service_fee_id, membership_id)
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(40) NOT NULL UNIQUE,
			subscription_id UUID NOT NULL REFERENCES subscriptions(id),
			payable_amount_in_minor_unit BIGINT NOT NULL CHECK (payable_amount_in_minor_unit >= 0),
			total_amount_paid_in_minor_unit BIGINT NOT NULL DEFAULT 0,
			payment_status VARCHAR(20) NOT NULL DEFAULT 'NOT_PAID',
			currency_code VARCHAR(3) NOT NULL DEFAULT 'NGN',
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS payment_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			reference VARCHAR(40) NOT NULL UNIQUE,
			association_id UUID NOT NULL REFERENCES associations(id),
			amount_in_minor_unit BIGINT NOT NULL CHECK (amount_in_minor_unit >= 0),
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(40) NOT NULL UNIQUE,
			association_id UUID NOT NULL REFERENCES associations(id),
			payment_request_id UUID REFERENCES payment_requests(id),
			amount_in_minor_unit BIGINT NOT NULL CHECK (amount_in_minor_unit >= 0),
			payment_status VARCHAR(20) NOT NULL DEFAULT 'NOT_PAID',
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS bill_invoices (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			bill_id UUID NOT NULL REFERENCES bills(id),
			invoice_id UUID NOT NULL REFERENCES invoices(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (bill_id, invoice_id)
		)`,
		`CREATE TABLE IF NOT EXISTS payment_transactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			payment_request_id UUID REFERENCES payment_requests(id),
			amount_in_minor_unit BIGINT NOT NULL CHECK (amount_in_minor_unit >= 0),
			transaction_reference VARCHAR(100) NOT NULL UNIQUE,
			merchant_reference VARCHAR(100),
			paid_by_membership_id UUID REFERENCES memberships(id),
			confirmed_payment_date TIMESTAMPTZ,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS wallets (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			reference VARCHAR(40) NOT NULL UNIQUE,
			association_id UUID NOT NULL UNIQUE REFERENCES associations(id),
			book_balance_in_minor_unit BIGINT NOT NULL DEFAULT 0,
			available_balance_in_minor_unit BIGINT NOT NULL DEFAULT 0,
			status VARCHAR(30) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_subscription ON bills(subscription_id)`,
		`CREATE INDEX IF NOT EXISTS idx_service_fees_association ON service_fees(association_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_transactions_request ON payment_transactions(payment_request_id)`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			log.Printf("Failed to run migration statement: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
