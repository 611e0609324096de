package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a fixed-price, fixed-duration investment product paying a fixed
// daily percentage yield on business days. Admin-managed catalog data.
type Plan struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	DailyYield   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"daily_yield"`
	DurationDays int             `gorm:"not null" json:"duration_days"`
	Active       bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"-"`
}

func (Plan) TableName() string {
	return "plans"
}
