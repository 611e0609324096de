package admins

import (
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/services"
)

// Controller groups the admin endpoints.
type Controller struct {
	DB          *gorm.DB
	Withdrawals *services.WithdrawalService
}

func NewController(db *gorm.DB, withdrawals *services.WithdrawalService) *Controller {
	return &Controller{DB: db, Withdrawals: withdrawals}
}
