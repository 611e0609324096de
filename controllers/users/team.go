package users

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/services"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

// GET /users/team and /users/team/{level}
// Walks the downline one level at a time, the same depth commissions travel.
func (c *Controller) Team(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	requested := 0
	if levelStr, found := mux.Vars(r)["level"]; found {
		lv, err := strconv.Atoi(levelStr)
		if err != nil || lv < 1 || lv > services.ReferralDepth {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nível inválido"})
			return
		}
		requested = lv
	}

	levels := make([][]models.User, 0, services.ReferralDepth)
	parents := []uint{uid}
	for depth := 1; depth <= services.ReferralDepth; depth++ {
		var members []models.User
		if len(parents) > 0 {
			if err := c.DB.Where("referrer_id IN ?", parents).Find(&members).Error; err != nil {
				utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar equipe"})
				return
			}
		}
		levels = append(levels, members)
		parents = parents[:0]
		for _, m := range members {
			parents = append(parents, m.ID)
		}
	}

	summary := func(depth int, members []models.User) map[string]interface{} {
		invested := decimal.Zero
		if len(members) > 0 {
			ids := make([]uint, 0, len(members))
			for _, m := range members {
				ids = append(ids, m.ID)
			}
			var total decimal.NullDecimal
			c.DB.Model(&models.Investment{}).
				Joins("JOIN plans ON plans.id = investments.plan_id").
				Where("investments.user_id IN ? AND investments.status = ?", ids, models.InvestmentActive).
				Select("COALESCE(SUM(plans.price), 0)").Scan(&total)
			if total.Valid {
				invested = total.Decimal
			}
		}
		items := make([]map[string]interface{}, 0, len(members))
		for _, m := range members {
			items = append(items, map[string]interface{}{
				"id":            m.ID,
				"name":          m.Name,
				"rank":          m.Rank,
				"career_points": m.CareerPoints,
				"joined_at":     m.CreatedAt,
			})
		}
		return map[string]interface{}{
			"level":          depth,
			"count":          len(members),
			"total_invested": invested.StringFixed(2),
			"members":        items,
		}
	}

	if requested > 0 {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: summary(requested, levels[requested-1])})
		return
	}

	out := make([]map[string]interface{}, 0, services.ReferralDepth)
	for i, members := range levels {
		out = append(out, summary(i+1, members))
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: out})
}
