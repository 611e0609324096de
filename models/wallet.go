package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet sub-balance identifiers. Yield and deposit money lives in "balance",
// referral commissions accumulate in "referral".
const (
	WalletTypeBalance  = "balance"
	WalletTypeReferral = "referral"
)

type Wallet struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	ReferralBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"referral_balance"`
	CreatedAt       time.Time       `json:"-"`
	UpdatedAt       time.Time       `json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}
