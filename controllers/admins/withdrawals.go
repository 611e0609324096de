package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/services"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

// GET /admin/withdrawals?status=&page=&limit=
func (c *Controller) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := c.DB.Model(&models.Withdrawal{}).
		Select("withdrawals.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = withdrawals.user_id")
	if status != "" {
		query = query.Where("withdrawals.status = ?", status)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar saques"})
		return
	}

	type withdrawalRow struct {
		models.Withdrawal
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}
	var rows []withdrawalRow
	if err := query.Order("withdrawals.id DESC").Limit(limit).Offset((page - 1) * limit).Scan(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar saques"})
		return
	}

	items := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		items = append(items, map[string]interface{}{
			"id":          row.ID,
			"user_id":     row.UserID,
			"user_name":   row.UserName,
			"user_email":  row.UserEmail,
			"amount":      row.Amount.StringFixed(2),
			"wallet_type": row.WalletType,
			"status":      row.Status,
			"reason":      utils.GetStringValue(row.Reason),
			"created_at":  row.CreatedAt,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"withdrawals": items,
			"pagination":  map[string]interface{}{"page": page, "limit": limit, "total_rows": totalRows},
		},
	})
}

// PUT /admin/withdrawals/{id}/approve
func (c *Controller) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "ID inválido"})
		return
	}

	withdrawal, err := c.Withdrawals.Approve(r.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyProcessed):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Saque já processado"})
		case errors.Is(err, services.ErrInsufficientFunds):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Saldo insuficiente do usuário, saque não aprovado"})
		default:
			logging.Sugar().Errorf("approve withdrawal %d: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao aprovar saque"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Saque aprovado",
		Data:    map[string]interface{}{"id": withdrawal.ID, "status": withdrawal.Status},
	})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// PUT /admin/withdrawals/{id}/reject
func (c *Controller) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "ID inválido"})
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "JSON inválido"})
		return
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Informe o motivo da rejeição"})
		return
	}

	withdrawal, err := c.Withdrawals.Reject(r.Context(), uint(id), req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyProcessed) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Saque já processado"})
			return
		}
		logging.Sugar().Errorf("reject withdrawal %d: %v", id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao rejeitar saque"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Saque rejeitado",
		Data:    map[string]interface{}{"id": withdrawal.ID, "status": withdrawal.Status, "reason": utils.GetStringValue(withdrawal.Reason)},
	})
}
