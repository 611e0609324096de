package users

import (
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/services"
)

// Controller groups the authenticated user endpoints.
type Controller struct {
	DB          *gorm.DB
	Wallets     *services.WalletService
	Investments *services.InvestmentService
	Deposits    *services.DepositService
	Withdrawals *services.WithdrawalService
	Yields      *services.YieldService
}

func NewController(db *gorm.DB, wallets *services.WalletService, investments *services.InvestmentService, deposits *services.DepositService, withdrawals *services.WithdrawalService, yields *services.YieldService) *Controller {
	return &Controller{
		DB:          db,
		Wallets:     wallets,
		Investments: investments,
		Deposits:    deposits,
		Withdrawals: withdrawals,
		Yields:      yields,
	}
}
