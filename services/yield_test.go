package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

func seedInvestment(t *testing.T, db *gorm.DB, userID, planID uint, start, expires time.Time, status string) *models.Investment {
	t.Helper()
	inv := models.Investment{
		UserID:    userID,
		PlanID:    planID,
		StartDate: start,
		ExpiresAt: expires,
		Status:    status,
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed investment: %v", err)
	}
	return &inv
}

func TestDailyYieldCreditsMainBalance(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	yields := NewYieldService(db, wallets)
	yields.now = func() time.Time { return wednesday }

	investor := createUser(t, db, "investor", nil, "0", "0")
	plan := createPlan(t, db, "Plano Ouro", "1000", "1.5", 60)
	seedInvestment(t, db, investor.ID, plan.ID, wednesday.AddDate(0, 0, -5), wednesday.AddDate(0, 0, 30), models.InvestmentActive)

	summary, err := yields.ProcessDailyYields(context.Background())
	if err != nil {
		t.Fatalf("yield run failed: %v", err)
	}
	if summary.YieldsPaid != 1 || summary.Errors != 0 {
		t.Fatalf("expected 1 paid 0 errors, got %+v", summary)
	}

	wallet := walletOf(t, db, investor.ID)
	if got := wallet.Balance.StringFixed(2); got != "15.00" {
		t.Fatalf("expected balance 15.00, got %s", got)
	}
	if got := wallet.ReferralBalance.StringFixed(2); got != "0.00" {
		t.Fatalf("yield must not touch referral balance, got %s", got)
	}

	var entry models.Transaction
	if err := db.Where("wallet_id = ? AND type = ?", wallet.ID, models.TransactionYield).First(&entry).Error; err != nil {
		t.Fatalf("expected a YIELD transaction: %v", err)
	}
}

func TestDailyYieldSecondRunPaysAgain(t *testing.T) {
	// There is intentionally no same-day guard: two runs pay two yields.
	db := newTestDB(t)
	wallets := NewWalletService(db)
	yields := NewYieldService(db, wallets)
	yields.now = func() time.Time { return wednesday }

	investor := createUser(t, db, "investor", nil, "0", "0")
	plan := createPlan(t, db, "Plano Ouro", "1000", "1.5", 60)
	seedInvestment(t, db, investor.ID, plan.ID, wednesday.AddDate(0, 0, -5), wednesday.AddDate(0, 0, 30), models.InvestmentActive)

	for i := 0; i < 2; i++ {
		if _, err := yields.ProcessDailyYields(context.Background()); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
	}

	if got := walletOf(t, db, investor.ID).Balance.StringFixed(2); got != "30.00" {
		t.Fatalf("expected balance 30.00 after two runs, got %s", got)
	}
}

func TestDailyYieldWeekendGuard(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	yields := NewYieldService(db, wallets)
	saturday := time.Date(2025, 1, 4, 9, 0, 0, 0, time.UTC)
	yields.now = func() time.Time { return saturday }

	investor := createUser(t, db, "investor", nil, "0", "0")
	plan := createPlan(t, db, "Plano Ouro", "1000", "1.5", 60)
	seedInvestment(t, db, investor.ID, plan.ID, saturday.AddDate(0, 0, -5), saturday.AddDate(0, 0, 30), models.InvestmentActive)

	summary, err := yields.ProcessDailyYields(context.Background())
	if err != nil {
		t.Fatalf("weekend run failed: %v", err)
	}
	if !summary.Weekend {
		t.Fatalf("expected weekend flag set")
	}
	if summary.YieldsPaid != 0 {
		t.Fatalf("expected no yields on Saturday, got %d", summary.YieldsPaid)
	}
	if got := walletOf(t, db, investor.ID).Balance.StringFixed(2); got != "0.00" {
		t.Fatalf("expected untouched balance, got %s", got)
	}
}

func TestDailyYieldMaturesExpiredBeforePaying(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	yields := NewYieldService(db, wallets)
	yields.now = func() time.Time { return wednesday }

	investor := createUser(t, db, "investor", nil, "0", "0")
	plan := createPlan(t, db, "Plano Ouro", "1000", "1.5", 60)
	// Matured yesterday: must be completed and excluded from today's payment.
	expired := seedInvestment(t, db, investor.ID, plan.ID, wednesday.AddDate(0, 0, -90), wednesday.AddDate(0, 0, -1), models.InvestmentActive)
	// Still running: gets paid.
	seedInvestment(t, db, investor.ID, plan.ID, wednesday.AddDate(0, 0, -5), wednesday.AddDate(0, 0, 30), models.InvestmentActive)

	summary, err := yields.ProcessDailyYields(context.Background())
	if err != nil {
		t.Fatalf("yield run failed: %v", err)
	}
	if summary.InvestmentsMatured != 1 {
		t.Fatalf("expected 1 matured, got %d", summary.InvestmentsMatured)
	}
	if summary.YieldsPaid != 1 {
		t.Fatalf("expected 1 paid, got %d", summary.YieldsPaid)
	}

	var reloaded models.Investment
	if err := db.First(&reloaded, expired.ID).Error; err != nil {
		t.Fatalf("reload investment: %v", err)
	}
	if reloaded.Status != models.InvestmentCompleted {
		t.Fatalf("expected COMPLETED, got %s", reloaded.Status)
	}
	if got := walletOf(t, db, investor.ID).Balance.StringFixed(2); got != "15.00" {
		t.Fatalf("expected 15.00 from the single active investment, got %s", got)
	}
}
