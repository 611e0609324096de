package services

import (
	"testing"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

func TestChainOfOrdersClosestFirst(t *testing.T) {
	db := newTestDB(t)
	referrals := NewReferralService(db)

	top := createUser(t, db, "top", nil, "0", "0")
	mid := createUser(t, db, "mid", &top.ID, "0", "0")
	leaf := createUser(t, db, "leaf", &mid.ID, "0", "0")

	chain, err := referrals.ChainOf(leaf.ID, ReferralDepth)
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected 2 ancestors, got %d", len(chain))
	}
	if chain[0].ID != mid.ID || chain[1].ID != top.ID {
		t.Fatalf("expected [mid top], got [%d %d]", chain[0].ID, chain[1].ID)
	}
}

func TestChainOfCapsAtDepth(t *testing.T) {
	db := newTestDB(t)
	referrals := NewReferralService(db)

	var prev *uint
	var last *models.User
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		last = createUser(t, db, name, prev, "0", "0")
		id := last.ID
		prev = &id
	}

	chain, err := referrals.ChainOf(last.ID, ReferralDepth)
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}
	if len(chain) != ReferralDepth {
		t.Fatalf("expected chain capped at %d, got %d", ReferralDepth, len(chain))
	}
}

func TestAwardCareerPoints(t *testing.T) {
	db := newTestDB(t)
	referrals := NewReferralService(db)

	top := createUser(t, db, "top", nil, "0", "0")
	mid := createUser(t, db, "mid", &top.ID, "0", "0")
	leaf := createUser(t, db, "leaf", &mid.ID, "0", "0")

	if err := referrals.AwardCareerPoints(db, leaf.ID); err != nil {
		t.Fatalf("award failed: %v", err)
	}

	for _, id := range []uint{top.ID, mid.ID} {
		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			t.Fatalf("reload user %d: %v", id, err)
		}
		if user.CareerPoints != 1 {
			t.Fatalf("user %d: expected 1 career point, got %d", id, user.CareerPoints)
		}
	}
	var self models.User
	if err := db.First(&self, leaf.ID).Error; err != nil {
		t.Fatalf("reload leaf: %v", err)
	}
	if self.CareerPoints != 0 {
		t.Fatalf("the new user earns nothing, got %d", self.CareerPoints)
	}
}
