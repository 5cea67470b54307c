package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/uncle-tee/socialite.io/app/database"
	"github.com/uncle-tee/socialite.io/app/models"
)

// StartBillingScheduler runs the billing cycle daily. Every active service
// fee whose next billing date has passed gets one new bill per active
// subscription, and its next billing date moves forward one cycle.
func StartBillingScheduler(db *sql.DB) *cron.Cron {
	scheduler := cron.New()
	_, err := scheduler.AddFunc("5 0 * * *", func() {
		if err := GenerateCycleBills(db, time.Now()); err != nil {
			log.Printf("Billing cycle run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatal("Failed to schedule billing cycle:", err)
	}
	scheduler.Start()
	log.Println("Billing scheduler started")
	return scheduler
}

// GenerateCycleBills creates the due bills for every service fee whose
// billing date has arrived. Each fee is processed in its own transaction so
// one failing fee does not block the rest. The date advance makes the run
// idempotent per cycle.
func GenerateCycleBills(db *sql.DB, asOf time.Time) error {
	fees, err := database.GetDueServiceFees(db, asOf)
	if err != nil {
		return err
	}

	for _, fee := range fees {
		if err := generateBillsForFee(db, fee); err != nil {
			log.Printf("Failed to generate bills for fee %s: %v", fee.Code, err)
		}
	}
	return nil
}

func generateBillsForFee(db *sql.DB, fee *models.ServiceFee) error {
	subscriptions, err := database.GetActiveSubscriptionsByServiceFee(db, fee.ID)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, subscription := range subscriptions {
		bill := &models.Bill{
			Code:                     NewReference("BIL"),
			SubscriptionID:           subscription.ID,
			PayableAmountInMinorUnit: fee.AmountInMinorUnit,
			PaymentStatus:            models.PaymentNotPaid,
			CurrencyCode:             "NGN",
			Status:                   models.StatusActive,
		}
		if err := database.CreateBill(tx, bill); err != nil {
			return err
		}
	}

	if err := database.AdvanceNextBillingDate(tx, fee.ID, fee.NextCycleDate(fee.NextBillingDate)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Generated %d bills for service fee %s", len(subscriptions), fee.Code)
	return nil
}
