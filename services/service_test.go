package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.Plan{},
		&models.Investment{},
		&models.Withdrawal{},
		&models.PixDeposit{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func createUser(t *testing.T, db *gorm.DB, name string, referrerID *uint, balance, referralBalance string) *models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        name + "@test.local",
		Password:     "x",
		Role:         models.RoleUser,
		ReferralCode: name,
		ReferrerID:   referrerID,
		Rank:         "Iniciante",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	wallet := models.Wallet{
		UserID:          user.ID,
		Balance:         mustDecimal(t, balance),
		ReferralBalance: mustDecimal(t, referralBalance),
	}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("create wallet for %s: %v", name, err)
	}
	user.Wallet = &wallet
	return &user
}

// createUserNoWallet builds a user whose wallet row is missing, for chain
// termination cases.
func createUserNoWallet(t *testing.T, db *gorm.DB, name string, referrerID *uint) *models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        name + "@test.local",
		Password:     "x",
		Role:         models.RoleUser,
		ReferralCode: name,
		ReferrerID:   referrerID,
		Rank:         "Iniciante",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return &user
}

func createPlan(t *testing.T, db *gorm.DB, name, price, dailyYield string, durationDays int) *models.Plan {
	t.Helper()
	plan := models.Plan{
		Name:         name,
		Price:        mustDecimal(t, price),
		DailyYield:   mustDecimal(t, dailyYield),
		DurationDays: durationDays,
		Active:       true,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("create plan %s: %v", name, err)
	}
	return &plan
}

func walletOf(t *testing.T, db *gorm.DB, userID uint) *models.Wallet {
	t.Helper()
	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		t.Fatalf("load wallet of user %d: %v", userID, err)
	}
	return &wallet
}
