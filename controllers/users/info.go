package users

import (
	"net/http"

	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

// GET /users/info
func (c *Controller) Info(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var user models.User
	if err := c.DB.Preload("Wallet").First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
		return
	}

	var activeInvestments int64
	c.DB.Model(&models.Investment{}).Where("user_id = ? AND status = ?", uid, models.InvestmentActive).Count(&activeInvestments)

	var directReferrals int64
	c.DB.Model(&models.User{}).Where("referrer_id = ?", uid).Count(&directReferrals)

	data := map[string]interface{}{
		"id":                 user.ID,
		"name":               user.Name,
		"email":              user.Email,
		"referral_code":      user.ReferralCode,
		"rank":               user.Rank,
		"career_points":      user.CareerPoints,
		"active_investments": activeInvestments,
		"direct_referrals":   directReferrals,
	}
	if user.Wallet != nil {
		data["wallet"] = map[string]interface{}{
			"balance":          user.Wallet.Balance.StringFixed(2),
			"referral_balance": user.Wallet.ReferralBalance.StringFixed(2),
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: data})
}
