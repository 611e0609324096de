package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:10;not null;default:'USER'" json:"role"`
	ReferralCode string    `gorm:"size:20;uniqueIndex;not null" json:"referral_code"`
	ReferrerID   *uint     `gorm:"column:referrer_id;index" json:"referrer_id"`
	Rank         string    `gorm:"size:20;not null;default:'Iniciante'" json:"rank"`
	CareerPoints uint      `gorm:"not null;default:0" json:"career_points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`

	Wallet *Wallet `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
}

func (User) TableName() string {
	return "users"
}
