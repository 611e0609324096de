package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	WithdrawalPending  = "PENDING"
	WithdrawalApproved = "APPROVED"
	WithdrawalRejected = "REJECTED"
)

type Withdrawal struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	WalletType string          `gorm:"size:10;not null;default:'balance'" json:"wallet_type"`
	Status     string          `gorm:"size:10;not null;default:'PENDING';index" json:"status"`
	Reason     *string         `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
