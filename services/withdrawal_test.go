package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

func TestWithdrawalRequestChecksBalance(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	withdrawals := NewWithdrawalService(db, wallets)

	user := createUser(t, db, "saver", nil, "100", "0")

	if _, err := withdrawals.Request(context.Background(), user.ID, mustDecimal(t, "150"), models.WalletTypeBalance); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	wd, err := withdrawals.Request(context.Background(), user.ID, mustDecimal(t, "60"), models.WalletTypeBalance)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if wd.Status != models.WithdrawalPending {
		t.Fatalf("expected PENDING, got %s", wd.Status)
	}
	// Funds stay in the wallet until approval.
	if got := walletOf(t, db, user.ID).Balance.StringFixed(2); got != "100.00" {
		t.Fatalf("request must not debit, got %s", got)
	}
}

func TestWithdrawalApproveDebitsTargetedBalance(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	withdrawals := NewWithdrawalService(db, wallets)

	user := createUser(t, db, "saver", nil, "50", "200")
	wd, err := withdrawals.Request(context.Background(), user.ID, mustDecimal(t, "120"), models.WalletTypeReferral)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	approved, err := withdrawals.Approve(context.Background(), wd.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != models.WithdrawalApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}

	wallet := walletOf(t, db, user.ID)
	if got := wallet.ReferralBalance.StringFixed(2); got != "80.00" {
		t.Fatalf("expected referral balance 80.00, got %s", got)
	}
	if got := wallet.Balance.StringFixed(2); got != "50.00" {
		t.Fatalf("main balance must be untouched, got %s", got)
	}

	var entry models.Transaction
	if err := db.Where("wallet_id = ? AND type = ?", wallet.ID, models.TransactionWithdrawal).First(&entry).Error; err != nil {
		t.Fatalf("expected WITHDRAWAL transaction: %v", err)
	}
	if got := entry.Amount.StringFixed(2); got != "-120.00" {
		t.Fatalf("expected ledger amount -120.00, got %s", got)
	}

	// Double approval must be rejected.
	if _, err := withdrawals.Approve(context.Background(), wd.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestWithdrawalApproveInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	withdrawals := NewWithdrawalService(db, wallets)

	user := createUser(t, db, "saver", nil, "100", "0")
	wd, err := withdrawals.Request(context.Background(), user.ID, mustDecimal(t, "90"), models.WalletTypeBalance)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// The balance was spent between request and approval.
	if err := db.Model(&models.Wallet{}).Where("user_id = ?", user.ID).
		Update("balance", mustDecimal(t, "10")).Error; err != nil {
		t.Fatalf("drain wallet: %v", err)
	}

	if _, err := withdrawals.Approve(context.Background(), wd.ID); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	var reloaded models.Withdrawal
	if err := db.First(&reloaded, wd.ID).Error; err != nil {
		t.Fatalf("reload withdrawal: %v", err)
	}
	if reloaded.Status != models.WithdrawalPending {
		t.Fatalf("failed approval must keep PENDING, got %s", reloaded.Status)
	}
	if got := walletOf(t, db, user.ID).Balance.StringFixed(2); got != "10.00" {
		t.Fatalf("expected balance unchanged at 10.00, got %s", got)
	}
}

func TestWithdrawalReject(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	withdrawals := NewWithdrawalService(db, wallets)

	user := createUser(t, db, "saver", nil, "100", "0")
	wd, err := withdrawals.Request(context.Background(), user.ID, mustDecimal(t, "90"), models.WalletTypeBalance)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	rejected, err := withdrawals.Reject(context.Background(), wd.ID, "dados bancários inválidos")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != models.WithdrawalRejected {
		t.Fatalf("expected REJECTED, got %s", rejected.Status)
	}
	if rejected.Reason == nil || *rejected.Reason != "dados bancários inválidos" {
		t.Fatalf("expected reason recorded, got %v", rejected.Reason)
	}
	if got := walletOf(t, db, user.ID).Balance.StringFixed(2); got != "100.00" {
		t.Fatalf("reject must not move funds, got %s", got)
	}

	if _, err := withdrawals.Reject(context.Background(), wd.ID, "again"); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}
