package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rewear-hq/rewear/internal/errs"
	"github.com/rewear-hq/rewear/internal/model"
)

// defaultRewards is the stock catalog, inserted on startup if missing.
var defaultRewards = []model.Reward{
	{ID: "free-shipping", Title: "Free Shipping Voucher", Description: "Free shipping on your next swap from partner stores", Category: "Shipping", Cost: 50},
	{ID: "listing-boost", Title: "Premium Listing Boost", Description: "Boost your listings to the top for 7 days", Category: "Features", Cost: 75},
	{ID: "coffee-card", Title: "Coffee Shop Gift Card", Description: "$10 gift card to popular coffee chains", Category: "Gift Cards", Cost: 100},
	{ID: "profile-badge", Title: "Featured Profile Badge", Description: "A special badge on your profile for 30 days", Category: "Profile", Cost: 125},
	{ID: "fashion-discount", Title: "Fashion Store Discount", Description: "20% off at partner fashion retailers", Category: "Discounts", Cost: 150},
	{ID: "vip-status", Title: "VIP Member Status", Description: "VIP features for 30 days including priority support", Category: "Membership", Cost: 200},
	{ID: "eco-certificate", Title: "Sustainability Certificate", Description: "Digital certificate recognizing your eco-friendly contributions", Category: "Recognition", Cost: 250},
	{ID: "eco-bundle", Title: "Eco-Warrior Bundle", Description: "Sustainable lifestyle products worth $50", Category: "Recognition", Cost: 300},
}

// EnsureDefaultRewards inserts the stock reward catalog, skipping entries
// that already exist.
func EnsureDefaultRewards(ctx context.Context, db *sql.DB) error {
	for _, r := range defaultRewards {
		_, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO rewards (id, title, description, category, cost) VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Description, r.Category, r.Cost,
		)
		if err != nil {
			return fmt.Errorf("seeding reward %s: %w", r.ID, err)
		}
	}
	return nil
}

// ListRewards returns the reward catalog, cheapest first.
func ListRewards(ctx context.Context, db *sql.DB) ([]model.Reward, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, category, cost FROM rewards ORDER BY cost, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing rewards: %w", err)
	}
	defer rows.Close()

	var rewards []model.Reward
	for rows.Next() {
		var r model.Reward
		var description sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &description, &r.Category, &r.Cost); err != nil {
			return nil, fmt.Errorf("scanning reward: %w", err)
		}
		r.Description = description.String
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

// GetReward returns a reward by ID.
func GetReward(ctx context.Context, db *sql.DB, id string) (*model.Reward, error) {
	r := &model.Reward{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, title, description, category, cost FROM rewards WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &description, &r.Category, &r.Cost)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: reward %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting reward: %w", err)
	}
	r.Description = description.String
	return r, nil
}

// RedeemReward deducts a reward's cost from the user's balance and
// records the redemption, all in one transaction.
func RedeemReward(ctx context.Context, db *sql.DB, userID, rewardID string) (*model.Redemption, error) {
	reward, err := GetReward(ctx, db, rewardID)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var points int
	err = tx.QueryRowContext(ctx,
		`SELECT points FROM users WHERE id = ? AND deleted_at IS NULL`, userID,
	).Scan(&points)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting balance: %w", err)
	}

	if points < reward.Cost {
		return nil, fmt.Errorf("%w: have %d, need %d", errs.ErrInsufficientPoints, points, reward.Cost)
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO redemptions (id, user_id, reward_id, cost) VALUES (?, ?, ?, ?)`,
		id, userID, rewardID, reward.Cost,
	)
	if err != nil {
		return nil, fmt.Errorf("recording redemption: %w", err)
	}

	if err := addPoints(ctx, tx, userID, -reward.Cost, model.PointsReasonRedemption, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing redemption: %w", err)
	}

	return GetRedemption(ctx, db, id)
}

// GetRedemption returns a redemption by ID with the reward title joined in.
func GetRedemption(ctx context.Context, db *sql.DB, id string) (*model.Redemption, error) {
	rd := &model.Redemption{}
	err := db.QueryRowContext(ctx,
		`SELECT rd.id, rd.user_id, rd.reward_id, rd.cost, rd.created_at, rw.title
		 FROM redemptions rd JOIN rewards rw ON rw.id = rd.reward_id
		 WHERE rd.id = ?`, id,
	).Scan(&rd.ID, &rd.UserID, &rd.RewardID, &rd.Cost, &rd.CreatedAt, &rd.RewardTitle)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: redemption %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting redemption: %w", err)
	}
	return rd, nil
}

// ListRedemptions returns a user's redemptions, newest first.
func ListRedemptions(ctx context.Context, db *sql.DB, userID string) ([]model.Redemption, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT rd.id, rd.user_id, rd.reward_id, rd.cost, rd.created_at, rw.title
		 FROM redemptions rd JOIN rewards rw ON rw.id = rd.reward_id
		 WHERE rd.user_id = ? ORDER BY rd.created_at DESC, rd.rowid DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing redemptions: %w", err)
	}
	defer rows.Close()

	var rds []model.Redemption
	for rows.Next() {
		var rd model.Redemption
		if err := rows.Scan(&rd.ID, &rd.UserID, &rd.RewardID, &rd.Cost, &rd.CreatedAt, &rd.RewardTitle); err != nil {
			return nil, fmt.Errorf("scanning redemption: %w", err)
		}
		rds = append(rds, rd)
	}
	return rds, rows.Err()
}
