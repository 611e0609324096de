package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type PlanController struct {
	DB *gorm.DB
}

func NewPlanController(db *gorm.DB) *PlanController {
	return &PlanController{DB: db}
}

// GET /plans
func (c *PlanController) List(w http.ResponseWriter, r *http.Request) {
	var plans []models.Plan
	if err := c.DB.Where("active = ?", true).Order("price ASC").Find(&plans).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar planos"})
		return
	}

	items := make([]map[string]interface{}, 0, len(plans))
	for _, p := range plans {
		items = append(items, map[string]interface{}{
			"id":            p.ID,
			"name":          p.Name,
			"price":         p.Price.StringFixed(2),
			"daily_yield":   p.DailyYield.String(),
			"duration_days": p.DurationDays,
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}
