package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/rewear-hq/rewear/internal/model"
	"github.com/rewear-hq/rewear/internal/store"
)

// RewardsHandler handles the reward catalog, redemptions and the
// points ledger.
type RewardsHandler struct {
	DB *sql.DB
}

// List handles GET /api/rewards.
func (h *RewardsHandler) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := store.ListRewards(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if rewards == nil {
		rewards = []model.Reward{}
	}
	jsonResponse(w, http.StatusOK, rewards)
}

// Redeem handles POST /api/rewards/{id}/redeem.
func (h *RewardsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	redemption, err := store.RedeemReward(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("reward redeemed", "user", claims.UserID, "reward", redemption.RewardID, "cost", redemption.Cost)
	jsonResponse(w, http.StatusCreated, redemption)
}

// Redemptions handles GET /api/redemptions, scoped to the caller.
func (h *RewardsHandler) Redemptions(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	redemptions, err := store.ListRedemptions(r.Context(), h.DB, claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}
	if redemptions == nil {
		redemptions = []model.Redemption{}
	}
	jsonResponse(w, http.StatusOK, redemptions)
}

// PointsHistory handles GET /api/points/history, scoped to the caller.
func (h *RewardsHandler) PointsHistory(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	entries, err := store.ListPointsHistory(r.Context(), h.DB, claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}
	if entries == nil {
		entries = []model.PointsEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}
