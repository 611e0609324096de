package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

// ReferralDepth is how far commissions and career points travel up the
// sponsor chain. It is a hard bound, not cycle detection: a corrupted graph
// that loops back on itself is still cut off after this many hops.
const ReferralDepth = 4

// ReferralService resolves the sponsor chain above a user.
type ReferralService struct {
	db *gorm.DB
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{db: db}
}

// ChainOf returns up to maxDepth ancestors of the given user, closest sponsor
// first, each with their wallet preloaded. The walk stops at a user without a
// referrer, at a dangling referrer id, or at a sponsor without a wallet.
func (s *ReferralService) ChainOf(userID uint, maxDepth int) ([]models.User, error) {
	return chainOf(s.db, userID, maxDepth)
}

func chainOf(tx *gorm.DB, userID uint, maxDepth int) ([]models.User, error) {
	var user models.User
	if err := tx.Select("id, referrer_id").First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	chain := make([]models.User, 0, maxDepth)
	current := user.ReferrerID
	for depth := 0; depth < maxDepth && current != nil; depth++ {
		var sponsor models.User
		err := tx.Preload("Wallet").First(&sponsor, *current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, fmt.Errorf("load sponsor %d: %w", *current, err)
		}
		if sponsor.Wallet == nil {
			break
		}
		chain = append(chain, sponsor)
		current = sponsor.ReferrerID
	}
	return chain, nil
}

// AwardCareerPoints gives one career point to each sponsor in the new user's
// chain. Called at registration, inside the registration transaction.
func (s *ReferralService) AwardCareerPoints(tx *gorm.DB, userID uint) error {
	chain, err := chainOf(tx, userID, ReferralDepth)
	if err != nil {
		return err
	}
	for _, sponsor := range chain {
		if err := tx.Model(&models.User{}).Where("id = ?", sponsor.ID).
			UpdateColumn("career_points", gorm.Expr("career_points + 1")).Error; err != nil {
			return fmt.Errorf("award career point to %d: %w", sponsor.ID, err)
		}
	}
	return nil
}
