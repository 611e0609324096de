package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

// DepositService persists Pix deposits and applies webhook confirmations.
// Talking to the payment provider is the controller's job; this service only
// owns the ledger side.
type DepositService struct {
	db      *gorm.DB
	wallets *WalletService
}

func NewDepositService(db *gorm.DB, wallets *WalletService) *DepositService {
	return &DepositService{db: db, wallets: wallets}
}

// CreateDeposit records a freshly created provider charge as PENDING.
func (s *DepositService) CreateDeposit(ctx context.Context, userID uint, amount decimal.Decimal, txid string, locationID int64, qrPayload, qrImage string) (*models.PixDeposit, error) {
	deposit := models.PixDeposit{
		UserID:     userID,
		Amount:     amount,
		TxID:       txid,
		Status:     models.PixDepositPending,
		LocationID: locationID,
		QRPayload:  qrPayload,
		QRImage:    qrImage,
	}
	if err := s.db.WithContext(ctx).Create(&deposit).Error; err != nil {
		return nil, fmt.Errorf("create pix deposit: %w", err)
	}
	return &deposit, nil
}

// ConfirmDeposit applies a provider confirmation for txid: credit the owner's
// balance and flip the deposit to COMPLETED, all in one transaction. A
// redelivered webhook finds the deposit no longer PENDING and gets
// ErrAlreadyProcessed, so the wallet is credited exactly once.
func (s *DepositService) ConfirmDeposit(ctx context.Context, txid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deposit models.PixDeposit
		if err := lockForUpdate(tx).Where("txid = ?", txid).First(&deposit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pix deposit %s: %w", txid, gorm.ErrRecordNotFound)
			}
			return fmt.Errorf("load pix deposit %s: %w", txid, err)
		}
		if deposit.Status != models.PixDepositPending {
			return ErrAlreadyProcessed
		}

		var wallet models.Wallet
		if err := tx.Where("user_id = ?", deposit.UserID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletMissing
			}
			return fmt.Errorf("load wallet of user %d: %w", deposit.UserID, err)
		}

		description := fmt.Sprintf("Depósito via Pix (txid %s)", deposit.TxID)
		if err := s.wallets.Credit(tx, wallet.ID, deposit.Amount, models.WalletTypeBalance, models.TransactionDeposit, description); err != nil {
			return err
		}

		return tx.Model(&deposit).Update("status", models.PixDepositCompleted).Error
	})
}
