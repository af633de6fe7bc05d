package model

import "time"

// Reward is a catalog entry users can redeem points against.
type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Cost        int    `json:"cost"`
}

// Redemption records a reward redeemed by a user. Cost is snapshotted so
// later catalog changes don't rewrite history.
type Redemption struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RewardID  string    `json:"reward_id"`
	Cost      int       `json:"cost"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields (not always populated).
	RewardTitle string `json:"reward_title,omitempty"`
}

// PointsEntry is a single row in a user's points ledger.
type PointsEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Points ledger reasons.
const (
	PointsReasonUpload     = "item_upload"
	PointsReasonSwap       = "swap_accepted"
	PointsReasonRedemption = "reward_redeemed"
)
