package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionDeposit       = "DEPOSIT"
	TransactionPlanPurchase  = "PLAN_PURCHASE"
	TransactionReferralBonus = "REFERRAL_BONUS"
	TransactionYield         = "YIELD"
	TransactionWithdrawal    = "WITHDRAWAL"
)

// Transaction is an append-only ledger entry. Positive amounts are credits,
// negative amounts are debits. Rows are never updated or deleted.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	WalletID    uint            `gorm:"not null;index" json:"wallet_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type        string          `gorm:"size:20;not null;index" json:"type"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
