package model

import (
	"math"
	"time"
)

// Item represents a single garment listing.
type Item struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category"`
	Size          string     `json:"size"`
	Condition     string     `json:"condition"`
	Image         string     `json:"image,omitempty"`
	Brand         string     `json:"brand,omitempty"`
	OriginalPrice float64    `json:"original_price,omitempty"`
	SwapValue     int        `json:"swap_value,omitempty"`
	Likes         int        `json:"likes"`
	Views         int        `json:"views"`
	UploaderID    string     `json:"uploader_id"`
	UploaderName  string     `json:"uploader_name"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// Item statuses. Only available items may be offered in a new swap request.
const (
	ItemStatusAvailable = "available"
	ItemStatusPending   = "pending"
	ItemStatusSwapped   = "swapped"
)

// Item categories.
const (
	CategoryShirts      = "shirts"
	CategoryDresses     = "dresses"
	CategoryPants       = "pants"
	CategoryJackets     = "jackets"
	CategoryAccessories = "accessories"
	CategoryShoes       = "shoes"
)

// Item conditions.
const (
	ConditionLikeNew   = "like-new"
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
)

// conditionMultiplier is the fraction of the original price counted
// toward an item's swap value.
var conditionMultiplier = map[string]float64{
	ConditionLikeNew:   0.8,
	ConditionExcellent: 0.7,
	ConditionGood:      0.6,
	ConditionFair:      0.4,
}

// SwapValue estimates an item's point valuation from its original price
// and condition. Unknown conditions value at zero. The value is computed
// once when the item is listed and never recomputed.
func SwapValue(originalPrice float64, condition string) int {
	return int(math.Round(originalPrice * conditionMultiplier[condition]))
}

// ValidItemStatus reports whether s is a known item status.
func ValidItemStatus(s string) bool {
	return s == ItemStatusAvailable || s == ItemStatusPending || s == ItemStatusSwapped
}

// ValidCategory reports whether c is a known item category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryShirts, CategoryDresses, CategoryPants, CategoryJackets, CategoryAccessories, CategoryShoes:
		return true
	}
	return false
}

// ValidCondition reports whether c is a known item condition.
func ValidCondition(c string) bool {
	_, ok := conditionMultiplier[c]
	return ok
}
