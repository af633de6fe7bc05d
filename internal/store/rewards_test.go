package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rewear-hq/rewear/internal/db"
	"github.com/rewear-hq/rewear/internal/errs"
	"github.com/rewear-hq/rewear/internal/model"
)

func TestEnsureDefaultRewards(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := EnsureDefaultRewards(ctx, database); err != nil {
		t.Fatalf("EnsureDefaultRewards: %v", err)
	}
	// Seeding again must not duplicate.
	if err := EnsureDefaultRewards(ctx, database); err != nil {
		t.Fatalf("EnsureDefaultRewards (second run): %v", err)
	}

	rewards, err := ListRewards(ctx, database)
	if err != nil {
		t.Fatalf("ListRewards: %v", err)
	}
	if len(rewards) != len(defaultRewards) {
		t.Fatalf("expected %d rewards, got %d", len(defaultRewards), len(rewards))
	}

	// Cheapest first.
	for i := 1; i < len(rewards); i++ {
		if rewards[i].Cost < rewards[i-1].Cost {
			t.Errorf("expected rewards ordered by cost, got %d before %d", rewards[i-1].Cost, rewards[i].Cost)
		}
	}
}

func TestRedeemReward(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	EnsureDefaultRewards(ctx, database)
	user := testUser(t, database, "Sarah", "sarah@example.com")
	addPoints(ctx, database, user.ID, 100, model.PointsReasonSwap, "test")

	redemption, err := RedeemReward(ctx, database, user.ID, "free-shipping")
	if err != nil {
		t.Fatalf("RedeemReward: %v", err)
	}
	if redemption.Cost != 50 {
		t.Errorf("expected cost 50, got %d", redemption.Cost)
	}
	if redemption.RewardTitle != "Free Shipping Voucher" {
		t.Errorf("expected joined reward title, got %q", redemption.RewardTitle)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.Points != 50 {
		t.Errorf("expected 50 points after redemption, got %d", got.Points)
	}

	// The deduction appears in the ledger.
	history, _ := ListPointsHistory(ctx, database, user.ID)
	if len(history) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(history))
	}
	if history[0].Amount != -50 || history[0].Reason != model.PointsReasonRedemption {
		t.Errorf("unexpected ledger head: %+v", history[0])
	}

	redemptions, _ := ListRedemptions(ctx, database, user.ID)
	if len(redemptions) != 1 || redemptions[0].ID != redemption.ID {
		t.Errorf("expected the redemption to be listed, got %d entries", len(redemptions))
	}
}

func TestRedeemInsufficientPoints(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	EnsureDefaultRewards(ctx, database)
	user := testUser(t, database, "Sarah", "sarah@example.com")

	_, err := RedeemReward(ctx, database, user.ID, "vip-status")
	if !errors.Is(err, errs.ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}

	// A refused redemption must not touch the balance or the ledger.
	got, _ := GetUser(ctx, database, user.ID)
	if got.Points != 0 {
		t.Errorf("expected balance unchanged at 0, got %d", got.Points)
	}
	redemptions, _ := ListRedemptions(ctx, database, user.ID)
	if len(redemptions) != 0 {
		t.Errorf("expected no redemptions, got %d", len(redemptions))
	}
}

func TestRedeemUnknownReward(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")

	if _, err := RedeemReward(ctx, database, user.ID, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown reward, got %v", err)
	}

	EnsureDefaultRewards(ctx, database)
	if _, err := RedeemReward(ctx, database, "nobody", "free-shipping"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}
