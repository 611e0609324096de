package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PixDepositPending   = "PENDING"
	PixDepositCompleted = "COMPLETED"
)

// PixDeposit tracks one Pix charge from creation to webhook confirmation.
// TxID correlates with the payment provider and must transition to COMPLETED
// exactly once.
type PixDeposit struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	TxID       string          `gorm:"column:txid;size:64;uniqueIndex;not null" json:"txid"`
	Status     string          `gorm:"size:10;not null;default:'PENDING';index" json:"status"`
	LocationID int64           `gorm:"not null;default:0" json:"location_id"`
	QRPayload  string          `gorm:"type:text" json:"qr_payload"`
	QRImage    string          `gorm:"type:text" json:"qr_image,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"-"`
}

func (PixDeposit) TableName() string {
	return "pix_deposits"
}
