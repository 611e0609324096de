package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

var wednesday = time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)

func TestPurchaseDebitsReferralBalanceFirst(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	investments := NewInvestmentService(db, wallets)
	investments.now = func() time.Time { return wednesday }

	buyer := createUser(t, db, "buyer", nil, "800", "300")
	plan := createPlan(t, db, "Plano Ouro", "1000", "1.5", 60)

	inv, err := investments.Purchase(context.Background(), buyer.ID, plan.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if inv.Status != models.InvestmentActive {
		t.Fatalf("expected ACTIVE investment, got %s", inv.Status)
	}

	wallet := walletOf(t, db, buyer.ID)
	if got := wallet.ReferralBalance.StringFixed(2); got != "0.00" {
		t.Fatalf("expected referral balance drained, got %s", got)
	}
	if got := wallet.Balance.StringFixed(2); got != "100.00" {
		t.Fatalf("expected balance 100.00, got %s", got)
	}

	// Both debits must appear in the ledger and sum to the plan price.
	var txs []models.Transaction
	if err := db.Where("wallet_id = ? AND type = ?", wallet.ID, models.TransactionPlanPurchase).Find(&txs).Error; err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 purchase transactions, got %d", len(txs))
	}
	sum := txs[0].Amount.Add(txs[1].Amount)
	if got := sum.StringFixed(2); got != "-1000.00" {
		t.Fatalf("expected purchase debits to sum -1000.00, got %s", got)
	}
}

func TestPurchaseInsufficientCombinedBalance(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	investments := NewInvestmentService(db, wallets)
	investments.now = func() time.Time { return wednesday }

	buyer := createUser(t, db, "poor", nil, "400", "300")
	plan := createPlan(t, db, "Plano Prata", "1000", "1.2", 60)

	_, err := investments.Purchase(context.Background(), buyer.ID, plan.ID)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Nothing may have moved.
	wallet := walletOf(t, db, buyer.ID)
	if got := wallet.Balance.StringFixed(2); got != "400.00" {
		t.Fatalf("expected balance unchanged, got %s", got)
	}
	var count int64
	db.Model(&models.Investment{}).Where("user_id = ?", buyer.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no investments, got %d", count)
	}
}

func TestPurchaseUnknownPlan(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	investments := NewInvestmentService(db, wallets)

	buyer := createUser(t, db, "buyer", nil, "1000", "0")
	_, err := investments.Purchase(context.Background(), buyer.ID, 999)
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestPurchaseMaturityUsesBusinessDays(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	investments := NewInvestmentService(db, wallets)
	// Friday start: one business day of duration must land on Monday.
	friday := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	investments.now = func() time.Time { return friday }

	buyer := createUser(t, db, "buyer", nil, "100", "0")
	plan := createPlan(t, db, "Plano Curto", "100", "1.0", 1)

	inv, err := investments.Purchase(context.Background(), buyer.ID, plan.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	want := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	if !inv.ExpiresAt.Equal(want) {
		t.Fatalf("expected maturity %v, got %v", want, inv.ExpiresAt)
	}
}

func TestCommissionCascadeDecaysAndRounds(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	investments := NewInvestmentService(db, wallets)
	investments.now = func() time.Time { return wednesday }

	// Chain: level4 <- level3 <- level2 <- level1 <- buyer
	level4 := createUser(t, db, "level4", nil, "0", "0")
	level3 := createUser(t, db, "level3", &level4.ID, "0", "0")
	level2 := createUser(t, db, "level2", &level3.ID, "0", "0")
	level1 := createUser(t, db, "level1", &level2.ID, "0", "0")
	buyer := createUser(t, db, "buyer", &level1.ID, "1000", "0")

	plan := createPlan(t, db, "Plano Ouro", "1000", "1.5", 60)
	if _, err := investments.Purchase(context.Background(), buyer.ID, plan.ID); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	expected := map[uint]string{
		level1.ID: "100.00",
		level2.ID: "10.00",
		level3.ID: "1.00",
		level4.ID: "0.10",
	}
	for userID, want := range expected {
		wallet := walletOf(t, db, userID)
		if got := wallet.ReferralBalance.StringFixed(2); got != want {
			t.Fatalf("user %d: expected referral balance %s, got %s", userID, want, got)
		}
		if got := wallet.Balance.StringFixed(2); got != "0.00" {
			t.Fatalf("user %d: commission must not touch main balance, got %s", userID, got)
		}
	}
}

func TestCommissionCascadeStopsAtBrokenChain(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	investments := NewInvestmentService(db, wallets)
	investments.now = func() time.Time { return wednesday }

	// level2 has no wallet: level1 is paid, level3 is skipped even though its
	// wallet is fine.
	level3 := createUser(t, db, "level3", nil, "0", "0")
	level2 := createUserNoWallet(t, db, "level2", &level3.ID)
	level1 := createUser(t, db, "level1", &level2.ID, "0", "0")
	buyer := createUser(t, db, "buyer", &level1.ID, "1000", "0")

	plan := createPlan(t, db, "Plano Ouro", "1000", "1.5", 60)
	if _, err := investments.Purchase(context.Background(), buyer.ID, plan.ID); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if got := walletOf(t, db, level1.ID).ReferralBalance.StringFixed(2); got != "100.00" {
		t.Fatalf("level1: expected 100.00, got %s", got)
	}
	if got := walletOf(t, db, level3.ID).ReferralBalance.StringFixed(2); got != "0.00" {
		t.Fatalf("level3: expected nothing past the break, got %s", got)
	}
}

func TestPurchaseRecomputesRank(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	investments := NewInvestmentService(db, wallets)
	investments.now = func() time.Time { return wednesday }

	buyer := createUser(t, db, "buyer", nil, "2500", "0")
	plan := createPlan(t, db, "Plano Ouro", "2500", "1.5", 60)

	if _, err := investments.Purchase(context.Background(), buyer.ID, plan.ID); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	var user models.User
	if err := db.First(&user, buyer.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.Rank != "Ouro" {
		t.Fatalf("expected rank Ouro, got %s", user.Rank)
	}
}
