package database

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/models"
)

// SeedPlans inserts the default plan catalog when the table is empty.
func SeedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.Plan{
		{Name: "Plano Bronze", Price: decimal.NewFromInt(100), DailyYield: decimal.RequireFromString("1.0"), DurationDays: 60, Active: true},
		{Name: "Plano Prata", Price: decimal.NewFromInt(300), DailyYield: decimal.RequireFromString("1.1"), DurationDays: 60, Active: true},
		{Name: "Plano Ouro", Price: decimal.NewFromInt(500), DailyYield: decimal.RequireFromString("1.4"), DurationDays: 60, Active: true},
		{Name: "Plano Platina", Price: decimal.NewFromInt(1000), DailyYield: decimal.RequireFromString("1.7"), DurationDays: 60, Active: true},
		{Name: "Plano Diamante", Price: decimal.NewFromInt(5000), DailyYield: decimal.RequireFromString("2.0"), DurationDays: 60, Active: true},
		{Name: "Plano Lendário", Price: decimal.NewFromInt(10000), DailyYield: decimal.RequireFromString("2.3"), DurationDays: 60, Active: true},
	}

	for _, p := range plans {
		if err := db.Create(&p).Error; err != nil {
			return err
		}
		logging.Sugar().Infof("[seed] plan %q created", p.Name)
	}
	return nil
}
