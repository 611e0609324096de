package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

// WalletService owns the two wallet sub-balances and the append-only
// transaction log. Every mutation happens through Credit or Debit so that a
// wallet is never updated without its matching ledger row.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// lockForUpdate applies SELECT ... FOR UPDATE on dialects that support it.
// The sqlite test dialect serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Credit adds amount to the wallet sub-balance selected by walletType and
// appends one transaction row. It must be called with a transaction handle so
// both writes share the same atomic scope.
func (s *WalletService) Credit(tx *gorm.DB, walletID uint, amount decimal.Decimal, walletType, txType, description string) error {
	return s.apply(tx, walletID, amount, walletType, txType, description)
}

// Debit removes amount from the wallet sub-balance selected by walletType,
// failing with ErrInsufficientFunds when the sub-balance does not cover it.
// The ledger row is written with a negative amount.
func (s *WalletService) Debit(tx *gorm.DB, walletID uint, amount decimal.Decimal, walletType, txType, description string) error {
	return s.apply(tx, walletID, amount.Neg(), walletType, txType, description)
}

func (s *WalletService) apply(tx *gorm.DB, walletID uint, delta decimal.Decimal, walletType, txType, description string) error {
	var wallet models.Wallet
	if err := lockForUpdate(tx).First(&wallet, walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWalletMissing
		}
		return fmt.Errorf("load wallet %d: %w", walletID, err)
	}

	var column string
	var newValue decimal.Decimal
	switch walletType {
	case models.WalletTypeReferral:
		column = "referral_balance"
		newValue = wallet.ReferralBalance.Add(delta)
	case models.WalletTypeBalance:
		column = "balance"
		newValue = wallet.Balance.Add(delta)
	default:
		return fmt.Errorf("unknown wallet type %q", walletType)
	}

	if newValue.IsNegative() {
		return ErrInsufficientFunds
	}

	if err := tx.Model(&wallet).Update(column, newValue).Error; err != nil {
		return fmt.Errorf("update wallet %d: %w", walletID, err)
	}

	entry := models.Transaction{
		WalletID:    walletID,
		Amount:      delta,
		Type:        txType,
		Description: description,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}
