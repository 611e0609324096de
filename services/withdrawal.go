package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

// WithdrawalService handles user withdrawal requests and their admin
// resolution. Funds leave the wallet at approval time, not at request time.
type WithdrawalService struct {
	db      *gorm.DB
	wallets *WalletService
}

func NewWithdrawalService(db *gorm.DB, wallets *WalletService) *WithdrawalService {
	return &WithdrawalService{db: db, wallets: wallets}
}

// Request registers a PENDING withdrawal for the given sub-balance. The
// balance check here is advisory; approval re-validates under lock.
func (s *WithdrawalService) Request(ctx context.Context, userID uint, amount decimal.Decimal, walletType string) (*models.Withdrawal, error) {
	if walletType != models.WalletTypeBalance && walletType != models.WalletTypeReferral {
		return nil, fmt.Errorf("unknown wallet type %q", walletType)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdrawal amount must be positive")
	}

	var wallet models.Wallet
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletMissing
		}
		return nil, fmt.Errorf("load wallet of user %d: %w", userID, err)
	}
	available := wallet.Balance
	if walletType == models.WalletTypeReferral {
		available = wallet.ReferralBalance
	}
	if available.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	withdrawal := models.Withdrawal{
		UserID:     userID,
		Amount:     amount,
		WalletType: walletType,
		Status:     models.WithdrawalPending,
	}
	if err := s.db.WithContext(ctx).Create(&withdrawal).Error; err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}
	return &withdrawal, nil
}

// Approve debits the targeted sub-balance and marks the withdrawal APPROVED,
// writing the ledger row in the same transaction. Insufficient funds leave
// both the wallet and the withdrawal untouched.
func (s *WithdrawalService) Approve(ctx context.Context, withdrawalID uint) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&withdrawal, withdrawalID).Error; err != nil {
			return fmt.Errorf("load withdrawal %d: %w", withdrawalID, err)
		}
		if withdrawal.Status != models.WithdrawalPending {
			return ErrAlreadyProcessed
		}

		var wallet models.Wallet
		if err := tx.Where("user_id = ?", withdrawal.UserID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletMissing
			}
			return fmt.Errorf("load wallet of user %d: %w", withdrawal.UserID, err)
		}

		description := fmt.Sprintf("Saque aprovado (#%d)", withdrawal.ID)
		if err := s.wallets.Debit(tx, wallet.ID, withdrawal.Amount, withdrawal.WalletType, models.TransactionWithdrawal, description); err != nil {
			return err
		}

		withdrawal.Status = models.WithdrawalApproved
		return tx.Model(&withdrawal).Update("status", models.WithdrawalApproved).Error
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// Reject marks a pending withdrawal REJECTED with the given reason. No funds
// move because none were debited at request time.
func (s *WithdrawalService) Reject(ctx context.Context, withdrawalID uint, reason string) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&withdrawal, withdrawalID).Error; err != nil {
			return fmt.Errorf("load withdrawal %d: %w", withdrawalID, err)
		}
		if withdrawal.Status != models.WithdrawalPending {
			return ErrAlreadyProcessed
		}
		withdrawal.Status = models.WithdrawalRejected
		withdrawal.Reason = &reason
		return tx.Model(&withdrawal).Updates(map[string]interface{}{
			"status": models.WithdrawalRejected,
			"reason": reason,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}
