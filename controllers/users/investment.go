package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/services"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type PurchaseRequest struct {
	PlanID uint `json:"plan_id"`
}

// POST /users/investments
func (c *Controller) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "JSON inválido"})
		return
	}
	if req.PlanID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Informe o plano desejado"})
		return
	}

	investment, err := c.Investments.Purchase(r.Context(), uid, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Plano não encontrado"})
		case errors.Is(err, services.ErrInsufficientFunds):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Saldo insuficiente para comprar este plano"})
		case errors.Is(err, services.ErrWalletMissing):
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Carteira não encontrada"})
		default:
			logging.Sugar().Errorf("purchase: user %d plan %d: %v", uid, req.PlanID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao processar a compra"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Investimento realizado com sucesso",
		Data: map[string]interface{}{
			"id":         investment.ID,
			"plan_id":    investment.PlanID,
			"start_date": investment.StartDate,
			"expires_at": investment.ExpiresAt,
			"status":     investment.Status,
		},
	})
}

// GET /users/investments
func (c *Controller) ListInvestments(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var investments []models.Investment
	if err := c.DB.Preload("Plan").Where("user_id = ?", uid).Order("id DESC").Find(&investments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar investimentos"})
		return
	}

	items := make([]map[string]interface{}, 0, len(investments))
	for _, inv := range investments {
		m := map[string]interface{}{
			"id":         inv.ID,
			"plan_id":    inv.PlanID,
			"start_date": inv.StartDate,
			"expires_at": inv.ExpiresAt,
			"status":     inv.Status,
		}
		if inv.Plan != nil {
			m["plan"] = map[string]interface{}{
				"name":          inv.Plan.Name,
				"price":         inv.Plan.Price.StringFixed(2),
				"daily_yield":   inv.Plan.DailyYield.String(),
				"duration_days": inv.Plan.DurationDays,
			}
		}
		items = append(items, m)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}
