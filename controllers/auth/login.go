package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/middleware"
	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,pwdmin"`
}

// POST /login
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := c.DB.Preload("Wallet").Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "E-mail ou senha incorretos"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
		return
	}

	if locked, retry := middleware.IsAccountLocked(user.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Message: "Muitas tentativas de login. Tente novamente mais tarde.",
			Data:    map[string]interface{}{"retry_after_seconds": int(retry.Seconds())},
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		middleware.RecordFailedLogin(user.ID)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "E-mail ou senha incorretos"})
		return
	}
	middleware.ResetFailedLogin(user.ID)

	ttl := tokenTTL()
	token, err := utils.GenerateAccessTokenWithExpiry(user.ID, user.Role, ttl)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Falha ao gerar token"})
		return
	}

	data := map[string]interface{}{
		"access_token":  token,
		"access_expire": time.Now().Add(ttl).UTC().Format(time.RFC3339),
		"user": map[string]interface{}{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"role":          user.Role,
			"referral_code": user.ReferralCode,
			"rank":          user.Rank,
			"career_points": user.CareerPoints,
		},
	}
	if user.Wallet != nil {
		data["wallet"] = map[string]interface{}{
			"balance":          user.Wallet.Balance.StringFixed(2),
			"referral_balance": user.Wallet.ReferralBalance.StringFixed(2),
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Login realizado com sucesso", Data: data})
}
