package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

func TestConfirmDepositCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	deposits := NewDepositService(db, wallets)

	user := createUser(t, db, "payer", nil, "0", "0")
	_, err := deposits.CreateDeposit(context.Background(), user.ID, mustDecimal(t, "250.00"), "tx123", 42, "payload", "")
	if err != nil {
		t.Fatalf("create deposit: %v", err)
	}

	if err := deposits.ConfirmDeposit(context.Background(), "tx123"); err != nil {
		t.Fatalf("first confirmation failed: %v", err)
	}

	// A redelivered webhook must not credit a second time.
	err = deposits.ConfirmDeposit(context.Background(), "tx123")
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed on replay, got %v", err)
	}

	wallet := walletOf(t, db, user.ID)
	if got := wallet.Balance.StringFixed(2); got != "250.00" {
		t.Fatalf("expected balance 250.00, got %s", got)
	}

	var count int64
	db.Model(&models.Transaction{}).
		Where("wallet_id = ? AND type = ?", wallet.ID, models.TransactionDeposit).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 DEPOSIT transaction, got %d", count)
	}

	var deposit models.PixDeposit
	if err := db.Where("txid = ?", "tx123").First(&deposit).Error; err != nil {
		t.Fatalf("reload deposit: %v", err)
	}
	if deposit.Status != models.PixDepositCompleted {
		t.Fatalf("expected COMPLETED, got %s", deposit.Status)
	}
}

func TestConfirmDepositUnknownTxid(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	deposits := NewDepositService(db, wallets)

	if err := deposits.ConfirmDeposit(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown txid")
	}
}
