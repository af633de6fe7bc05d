package model

import "time"

// SwapRequest represents a directed proposal to exchange the requester's
// item (from) for another user's item (to). User ids are snapshotted from
// the items' uploaders at creation time so that later item deletion does
// not orphan the participants.
type SwapRequest struct {
	ID          string     `json:"id"`
	FromUserID  string     `json:"from_user_id"`
	ToUserID    string     `json:"to_user_id"`
	FromItemID  string     `json:"from_item_id"`
	ToItemID    string     `json:"to_item_id"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Joined fields (not always populated).
	FromItemTitle string `json:"from_item_title,omitempty"`
	ToItemTitle   string `json:"to_item_title,omitempty"`
	FromUserName  string `json:"from_user_name,omitempty"`
	ToUserName    string `json:"to_user_name,omitempty"`
}

// Swap request statuses.
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCompleted = "completed"
)

// ValidSwapStatus reports whether s is a known swap request status.
func ValidSwapStatus(s string) bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected, SwapStatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a swap request may move from one status
// to another. Rejected and completed are terminal. A pending request may
// complete directly without an explicit acceptance step.
func CanTransition(from, to string) bool {
	switch from {
	case SwapStatusPending:
		return to == SwapStatusAccepted || to == SwapStatusRejected || to == SwapStatusCompleted
	case SwapStatusAccepted:
		return to == SwapStatusCompleted
	}
	return false
}
