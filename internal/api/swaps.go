package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/rewear-hq/rewear/internal/model"
	"github.com/rewear-hq/rewear/internal/store"
)

// SwapsHandler handles swap request endpoints.
type SwapsHandler struct {
	DB *sql.DB
}

type createSwapRequest struct {
	FromItemID string `json:"from_item_id"`
	ToItemID   string `json:"to_item_id"`
	Message    string `json:"message"`
}

type updateSwapRequest struct {
	Status string `json:"status"`
}

// Create handles POST /api/swaps. The requester must own the offered item.
func (h *SwapsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createSwapRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FromItemID != "" {
		fromItem, err := store.GetItem(r.Context(), h.DB, req.FromItemID)
		if err != nil {
			storeError(w, err)
			return
		}
		if fromItem.UploaderID != claims.UserID {
			jsonError(w, http.StatusForbidden, "you can only offer your own items")
			return
		}
	}

	swap, err := store.CreateSwapRequest(r.Context(), h.DB, req.FromItemID, req.ToItemID, req.Message)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("swap request created", "id", swap.ID, "from", swap.FromUserID, "to", swap.ToUserID)
	jsonResponse(w, http.StatusCreated, swap)
}

// List handles GET /api/swaps. Results are scoped to the authenticated
// user; ?direction=incoming|outgoing narrows to one side.
func (h *SwapsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	q := r.URL.Query()

	filter := store.SwapFilter{Status: q.Get("status"), ItemID: q.Get("item")}
	switch q.Get("direction") {
	case "incoming":
		filter.ToUserID = claims.UserID
	case "outgoing":
		filter.FromUserID = claims.UserID
	default:
		filter.UserID = claims.UserID
	}

	swaps, err := store.ListSwapRequests(r.Context(), h.DB, filter)
	if err != nil {
		storeError(w, err)
		return
	}
	if swaps == nil {
		swaps = []model.SwapRequest{}
	}
	jsonResponse(w, http.StatusOK, swaps)
}

// Get handles GET /api/swaps/{id}. Only participants may view a request.
func (h *SwapsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	swap, err := store.GetSwapRequest(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}
	if swap.FromUserID != claims.UserID && swap.ToUserID != claims.UserID && !claims.Admin {
		jsonError(w, http.StatusForbidden, "not a participant")
		return
	}

	jsonResponse(w, http.StatusOK, swap)
}

// UpdateStatus handles PUT /api/swaps/{id}/status. The recipient decides
// accept/reject; either participant may mark the swap completed.
func (h *SwapsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	var req updateSwapRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	swap, err := store.GetSwapRequest(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}

	switch req.Status {
	case model.SwapStatusAccepted, model.SwapStatusRejected:
		if swap.ToUserID != claims.UserID {
			jsonError(w, http.StatusForbidden, "only the recipient can accept or reject")
			return
		}
	case model.SwapStatusCompleted:
		if swap.FromUserID != claims.UserID && swap.ToUserID != claims.UserID {
			jsonError(w, http.StatusForbidden, "not a participant")
			return
		}
	default:
		jsonError(w, http.StatusBadRequest, "status must be accepted, rejected or completed")
		return
	}

	updated, err := store.UpdateSwapRequestStatus(r.Context(), h.DB, id, req.Status)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("swap request updated", "id", id, "status", req.Status, "by", claims.UserID)
	jsonResponse(w, http.StatusOK, updated)
}
