package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/models"
)

// commissionRate is the level-1 referral commission; each deeper level earns
// this fraction of the previous level's rounded payout.
var commissionRate = decimal.RequireFromString("0.10")

// InvestmentService is the purchase engine: it debits the buyer, creates the
// investment, pays the referral cascade and recomputes the buyer's rank.
type InvestmentService struct {
	db      *gorm.DB
	wallets *WalletService

	now func() time.Time
}

func NewInvestmentService(db *gorm.DB, wallets *WalletService) *InvestmentService {
	return &InvestmentService{db: db, wallets: wallets, now: time.Now}
}

// Purchase buys planID for userID. The debit split, investment row and
// commission cascade all share one transaction; the rank recompute runs
// best-effort after commit.
func (s *InvestmentService) Purchase(ctx context.Context, userID, planID uint) (*models.Investment, error) {
	var investment models.Investment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan models.Plan
		if err := tx.Where("id = ? AND active = ?", planID, true).First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanNotFound
			}
			return fmt.Errorf("load plan %d: %w", planID, err)
		}

		var buyer models.User
		if err := tx.First(&buyer, userID).Error; err != nil {
			return fmt.Errorf("load user %d: %w", userID, err)
		}

		var wallet models.Wallet
		if err := lockForUpdate(tx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletMissing
			}
			return fmt.Errorf("load wallet of user %d: %w", userID, err)
		}

		if wallet.Balance.Add(wallet.ReferralBalance).LessThan(plan.Price) {
			return ErrInsufficientFunds
		}

		// Referral funds are spent before yield/deposit funds.
		fromReferral := decimal.Min(wallet.ReferralBalance, plan.Price)
		fromBalance := plan.Price.Sub(fromReferral)

		description := fmt.Sprintf("Compra do plano %s", plan.Name)
		if fromReferral.IsPositive() {
			if err := s.wallets.Debit(tx, wallet.ID, fromReferral, models.WalletTypeReferral, models.TransactionPlanPurchase, description); err != nil {
				return err
			}
		}
		if fromBalance.IsPositive() {
			if err := s.wallets.Debit(tx, wallet.ID, fromBalance, models.WalletTypeBalance, models.TransactionPlanPurchase, description); err != nil {
				return err
			}
		}

		start := s.now()
		investment = models.Investment{
			UserID:    userID,
			PlanID:    plan.ID,
			StartDate: start,
			ExpiresAt: AddBusinessDays(start, plan.DurationDays),
			Status:    models.InvestmentActive,
		}
		if err := tx.Create(&investment).Error; err != nil {
			return fmt.Errorf("create investment: %w", err)
		}

		return s.payCommissions(tx, &buyer, plan.Price)
	})
	if err != nil {
		return nil, err
	}

	// Rank recompute is intentionally outside the purchase transaction.
	if err := s.RecomputeRank(ctx, userID); err != nil {
		logging.Sugar().Warnf("[invest] rank recompute for user %d failed: %v", userID, err)
	}

	return &investment, nil
}

// payCommissions walks up to ReferralDepth sponsors, paying a decaying
// commission into each referral balance. Each level's commission is rounded
// to 2 decimals before it is paid and before the next level is derived from
// it. A sponsor without a wallet ends the whole cascade, including deeper
// levels with valid wallets.
func (s *InvestmentService) payCommissions(tx *gorm.DB, buyer *models.User, baseAmount decimal.Decimal) error {
	chain, err := chainOf(tx, buyer.ID, ReferralDepth)
	if err != nil {
		return err
	}

	commission := baseAmount.Mul(commissionRate)
	for level, sponsor := range chain {
		rounded := commission.Round(2)
		description := fmt.Sprintf("Comissão de nível %d pela compra de %s", level+1, buyer.Name)
		if err := s.wallets.Credit(tx, sponsor.Wallet.ID, rounded, models.WalletTypeReferral, models.TransactionReferralBonus, description); err != nil {
			return err
		}
		commission = rounded.Mul(commissionRate)
	}
	return nil
}

// RecomputeRank sums the plan prices of the user's active investments and
// stores the matching rank label on the user row.
func (s *InvestmentService) RecomputeRank(ctx context.Context, userID uint) error {
	var investments []models.Investment
	if err := s.db.WithContext(ctx).Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.InvestmentActive).
		Find(&investments).Error; err != nil {
		return fmt.Errorf("load active investments: %w", err)
	}

	total := decimal.Zero
	for _, inv := range investments {
		if inv.Plan != nil {
			total = total.Add(inv.Plan.Price)
		}
	}

	rank := RankForTotal(total)
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("rank", rank).Error; err != nil {
		return fmt.Errorf("update rank: %w", err)
	}
	return nil
}
