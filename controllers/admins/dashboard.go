package admins

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type dashboardStats struct {
	TotalUsers         int64  `json:"total_users"`
	TotalInvestments   int64  `json:"total_investments"`
	ActiveInvestments  int64  `json:"active_investments"`
	PendingWithdrawals int64  `json:"pending_withdrawals"`
	PendingDeposits    int64  `json:"pending_deposits"`
	TotalBalance       string `json:"total_balance"`
	TotalInvested      string `json:"total_invested"`
}

// GET /admin/dashboard
func (c *Controller) Dashboard(w http.ResponseWriter, r *http.Request) {
	var stats dashboardStats

	c.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	c.DB.Model(&models.Investment{}).Count(&stats.TotalInvestments)
	c.DB.Model(&models.Investment{}).Where("status = ?", models.InvestmentActive).Count(&stats.ActiveInvestments)
	c.DB.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalPending).Count(&stats.PendingWithdrawals)
	c.DB.Model(&models.PixDeposit{}).Where("status = ?", models.PixDepositPending).Count(&stats.PendingDeposits)

	var totalBalance decimal.NullDecimal
	c.DB.Model(&models.Wallet{}).Select("COALESCE(SUM(balance + referral_balance), 0)").Scan(&totalBalance)
	stats.TotalBalance = totalBalance.Decimal.StringFixed(2)

	var totalInvested decimal.NullDecimal
	c.DB.Model(&models.Investment{}).
		Joins("JOIN plans ON plans.id = investments.plan_id").
		Where("investments.status = ?", models.InvestmentActive).
		Select("COALESCE(SUM(plans.price), 0)").Scan(&totalInvested)
	stats.TotalInvested = totalInvested.Decimal.StringFixed(2)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: stats})
}
