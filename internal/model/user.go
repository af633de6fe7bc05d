package model

import "time"

// User represents a registered member. Level is derived from points and
// filled in when the user is loaded, never stored.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Points       int        `json:"points"`
	TotalSwaps   int        `json:"total_swaps"`
	Level        string     `json:"level"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Membership levels, one tier per 500 points.
const (
	LevelBronze   = "Bronze"
	LevelSilver   = "Silver"
	LevelGold     = "Gold"
	LevelPlatinum = "Platinum"

	PointsPerLevel = 500
)

// Point awards.
const (
	UploadBonus = 25 // granted when a user lists an item
	SwapBonus   = 50 // granted to both participants when a swap is accepted
)

// LevelForPoints returns the membership level for a points balance.
func LevelForPoints(points int) string {
	switch {
	case points >= 3*PointsPerLevel:
		return LevelPlatinum
	case points >= 2*PointsPerLevel:
		return LevelGold
	case points >= PointsPerLevel:
		return LevelSilver
	}
	return LevelBronze
}
