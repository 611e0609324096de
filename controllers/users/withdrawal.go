package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/services"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type WithdrawalRequest struct {
	Amount     string `json:"amount"`
	WalletType string `json:"wallet_type"`
}

// POST /users/withdrawals
func (c *Controller) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var req WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "JSON inválido"})
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Valor de saque inválido"})
		return
	}
	walletType := strings.TrimSpace(req.WalletType)
	if walletType != models.WalletTypeBalance && walletType != models.WalletTypeReferral {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Tipo de carteira inválido"})
		return
	}

	withdrawal, err := c.Withdrawals.Request(r.Context(), uid, amount, walletType)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientFunds) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Saldo insuficiente para este saque"})
			return
		}
		logging.Sugar().Errorf("withdrawal request: user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao solicitar saque"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Solicitação de saque registrada, aguarde a aprovação",
		Data: map[string]interface{}{
			"id":          withdrawal.ID,
			"amount":      withdrawal.Amount.StringFixed(2),
			"wallet_type": withdrawal.WalletType,
			"status":      withdrawal.Status,
		},
	})
}

// GET /users/withdrawals
func (c *Controller) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var withdrawals []models.Withdrawal
	if err := c.DB.Where("user_id = ?", uid).Order("id DESC").Limit(50).Find(&withdrawals).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar saques"})
		return
	}

	items := make([]map[string]interface{}, 0, len(withdrawals))
	for _, wd := range withdrawals {
		items = append(items, map[string]interface{}{
			"id":          wd.ID,
			"amount":      wd.Amount.StringFixed(2),
			"wallet_type": wd.WalletType,
			"status":      wd.Status,
			"reason":      utils.GetStringValue(wd.Reason),
			"created_at":  wd.CreatedAt,
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}
