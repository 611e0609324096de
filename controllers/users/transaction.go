package users

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

// GET /users/wallet
func (c *Controller) Wallet(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var wallet models.Wallet
	if err := c.DB.Where("user_id = ?", uid).First(&wallet).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Carteira não encontrada"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"balance":          wallet.Balance.StringFixed(2),
			"referral_balance": wallet.ReferralBalance.StringFixed(2),
			"total":            wallet.Balance.Add(wallet.ReferralBalance).StringFixed(2),
		},
	})
}

// GET /users/transactions?type=&page=&limit=
func (c *Controller) ListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var wallet models.Wallet
	if err := c.DB.Select("id").Where("user_id = ?", uid).First(&wallet).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Carteira não encontrada"})
		return
	}

	txType := strings.TrimSpace(r.URL.Query().Get("type"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	countQuery := c.DB.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID)
	if txType != "" {
		countQuery = countQuery.Where("type = ?", txType)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar transações"})
		return
	}

	query := c.DB.Where("wallet_id = ?", wallet.ID)
	if txType != "" {
		query = query.Where("type = ?", txType)
	}
	var transactions []models.Transaction
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&transactions).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar transações"})
		return
	}

	items := make([]map[string]interface{}, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, map[string]interface{}{
			"id":          t.ID,
			"amount":      t.Amount.StringFixed(2),
			"type":        t.Type,
			"description": t.Description,
			"created_at":  t.CreatedAt,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"transactions": items,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}
