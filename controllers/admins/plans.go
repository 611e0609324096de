package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type planRequest struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	DailyYield   string `json:"daily_yield"`
	DurationDays int    `json:"duration_days"`
	Active       *bool  `json:"active"`
}

func (req *planRequest) parse() (*models.Plan, string) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, "Informe o nome do plano"
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || !price.IsPositive() {
		return nil, "Preço inválido"
	}
	dailyYield, err := decimal.NewFromString(strings.TrimSpace(req.DailyYield))
	if err != nil || !dailyYield.IsPositive() {
		return nil, "Rendimento diário inválido"
	}
	if req.DurationDays < 1 {
		return nil, "Duração inválida"
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &models.Plan{
		Name:         req.Name,
		Price:        price,
		DailyYield:   dailyYield,
		DurationDays: req.DurationDays,
		Active:       active,
	}, ""
}

// GET /admin/plans
func (c *Controller) ListPlans(w http.ResponseWriter, r *http.Request) {
	var plans []models.Plan
	if err := c.DB.Order("price ASC").Find(&plans).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar planos"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: plans})
}

// POST /admin/plans
func (c *Controller) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "JSON inválido"})
		return
	}
	plan, msg := req.parse()
	if msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}
	if err := c.DB.Create(plan).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao criar plano"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Plano criado", Data: plan})
}

// PUT /admin/plans/{id}
func (c *Controller) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "ID inválido"})
		return
	}

	var existing models.Plan
	if err := c.DB.First(&existing, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Plano não encontrado"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "JSON inválido"})
		return
	}
	plan, msg := req.parse()
	if msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}

	updates := map[string]interface{}{
		"name":          plan.Name,
		"price":         plan.Price,
		"daily_yield":   plan.DailyYield,
		"duration_days": plan.DurationDays,
		"active":        plan.Active,
	}
	if err := c.DB.Model(&existing).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao atualizar plano"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Plano atualizado", Data: existing})
}
