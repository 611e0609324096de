package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/models"
)

var oneHundred = decimal.NewFromInt(100)

// YieldSummary reports one batch run. The job always completes and returns a
// summary; individual investment failures are counted, never propagated.
type YieldSummary struct {
	YieldsPaid         int    `json:"yields_paid"`
	InvestmentsMatured int    `json:"investments_matured"`
	Errors             int    `json:"errors"`
	Weekend            bool   `json:"weekend"`
	Message            string `json:"message"`
}

// YieldService runs the daily batch: mature expired investments, then pay
// yield to the ones still active.
type YieldService struct {
	db      *gorm.DB
	wallets *WalletService

	now func() time.Time
}

func NewYieldService(db *gorm.DB, wallets *WalletService) *YieldService {
	return &YieldService{db: db, wallets: wallets, now: time.Now}
}

// ProcessDailyYields executes one sweep. Each yield payment runs in its own
// transaction so that one failing investment cannot roll back the others.
// There is no guard against running twice on the same day: a second run pays
// a second yield.
func (s *YieldService) ProcessDailyYields(ctx context.Context) (*YieldSummary, error) {
	log := logging.Sugar()
	today := s.now()

	if wd := today.Weekday(); wd == time.Saturday || wd == time.Sunday {
		log.Info("[yield] weekend, nothing to process")
		return &YieldSummary{Weekend: true, Message: "Fim de semana, nenhum rendimento processado."}, nil
	}

	summary := &YieldSummary{}

	// Step 1: complete investments whose maturity date has passed. They are
	// excluded from today's yield payment.
	result := s.db.WithContext(ctx).Model(&models.Investment{}).
		Where("status = ? AND expires_at <= ?", models.InvestmentActive, today).
		Update("status", models.InvestmentCompleted)
	if result.Error != nil {
		log.Errorf("[yield] maturity sweep failed: %v", result.Error)
		summary.Errors++
	} else {
		summary.InvestmentsMatured = int(result.RowsAffected)
		if result.RowsAffected > 0 {
			log.Infof("[yield] %d expired investments completed", result.RowsAffected)
		}
	}

	// Step 2: pay daily yield on everything still active.
	var active []models.Investment
	if err := s.db.WithContext(ctx).Preload("Plan").Preload("User.Wallet").
		Where("status = ?", models.InvestmentActive).
		Find(&active).Error; err != nil {
		return nil, fmt.Errorf("load active investments: %w", err)
	}

	if len(active) == 0 {
		summary.Message = "Nenhum investimento ativo para processar."
		return summary, nil
	}

	for i := range active {
		inv := &active[i]
		if inv.Plan == nil {
			log.Errorf("[yield] investment %d references missing plan %d", inv.ID, inv.PlanID)
			summary.Errors++
			continue
		}
		if inv.User == nil || inv.User.Wallet == nil {
			log.Warnf("[yield] user %d has no wallet, skipping investment %d", inv.UserID, inv.ID)
			summary.Errors++
			continue
		}

		yieldAmount := inv.Plan.Price.Mul(inv.Plan.DailyYield.Div(oneHundred))
		description := fmt.Sprintf("Rendimento diário do plano %s", inv.Plan.Name)

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.wallets.Credit(tx, inv.User.Wallet.ID, yieldAmount, models.WalletTypeBalance, models.TransactionYield, description)
		})
		if err != nil {
			log.Errorf("[yield] payment for investment %d failed: %v", inv.ID, err)
			summary.Errors++
			continue
		}
		summary.YieldsPaid++
	}

	summary.Message = fmt.Sprintf("Processamento concluído. %d rendimentos pagos, %d investimentos finalizados, %d falhas.",
		summary.YieldsPaid, summary.InvestmentsMatured, summary.Errors)
	log.Info("[yield] " + summary.Message)
	return summary, nil
}
