package auth

import (
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/services"
)

// Controller handles registration and login.
type Controller struct {
	DB        *gorm.DB
	Referrals *services.ReferralService
}

func NewController(db *gorm.DB, referrals *services.ReferralService) *Controller {
	return &Controller{DB: db, Referrals: referrals}
}

// tokenTTL reads JWT_TTL_HOURS (default 24h).
func tokenTTL() time.Duration {
	if s := os.Getenv("JWT_TTL_HOURS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return time.Duration(v) * time.Hour
		}
	}
	return 24 * time.Hour
}
