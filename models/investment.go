package models

import "time"

const (
	InvestmentActive    = "ACTIVE"
	InvestmentCompleted = "COMPLETED"
)

type Investment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PlanID    uint      `gorm:"not null;index" json:"plan_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Status    string    `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Investment) TableName() string {
	return "investments"
}
