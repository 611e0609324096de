package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/middleware"
	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,nameok"`
	Email                string `json:"email" validate:"required"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	ReferralCode         string `json:"referral_code"`
}

// POST /register
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.ReferralCode = strings.TrimSpace(req.ReferralCode)

	if !strings.Contains(req.Email, "@") {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "E-mail inválido"})
		return
	}

	var existing models.User
	if err := c.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "E-mail já cadastrado"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Sugar().Errorf("register: check email: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
		return
	}

	// Resolve sponsor when a referral code was supplied.
	var referrerID *uint
	if req.ReferralCode != "" {
		var sponsor models.User
		if err := c.DB.Where("referral_code = ?", req.ReferralCode).First(&sponsor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Código de indicação inválido"})
				return
			}
			logging.Sugar().Errorf("register: load sponsor %s: %v", req.ReferralCode, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
			return
		}
		referrerID = &sponsor.ID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
		return
	}

	code, err := generateUniqueReferralCode(c.DB, req.Name)
	if err != nil {
		logging.Sugar().Errorf("register: referral code: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
		return
	}

	newUser := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         models.RoleUser,
		ReferralCode: code,
		ReferrerID:   referrerID,
		Rank:         "Iniciante",
	}

	// User, wallet and sponsor career points commit together.
	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		wallet := models.Wallet{UserID: newUser.ID}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
		return c.Referrals.AwardCareerPoints(tx, newUser.ID)
	})
	if err != nil {
		logging.Sugar().Errorf("register: create user: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Cadastro falhou, tente novamente"})
		return
	}

	ttl := tokenTTL()
	token, err := utils.GenerateAccessTokenWithExpiry(newUser.ID, newUser.Role, ttl)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Falha ao gerar token"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Cadastro realizado com sucesso, bem-vindo!",
		Data: map[string]interface{}{
			"access_token":  token,
			"access_expire": time.Now().Add(ttl).UTC().Format(time.RFC3339),
			"user": map[string]interface{}{
				"id":            newUser.ID,
				"name":          newUser.Name,
				"email":         newUser.Email,
				"referral_code": newUser.ReferralCode,
				"rank":          newUser.Rank,
				"career_points": newUser.CareerPoints,
			},
		},
	})
}

// generateUniqueReferralCode builds codes like JOAO4821: the first letters of
// the name uppercased plus random digits, retried until unused.
func generateUniqueReferralCode(db *gorm.DB, name string) (string, error) {
	prefix := namePrefix(name)
	const maxAttempts = 100

	for attempt := 0; attempt < maxAttempts; attempt++ {
		digits, err := randomDigits(4)
		if err != nil {
			return "", err
		}
		code := prefix + digits
		var count int64
		if err := db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code after %d attempts", maxAttempts)
}

func namePrefix(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "USER"
	}
	return b.String()
}

func randomDigits(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = '0' + buf[i]%10
	}
	return string(out), nil
}
