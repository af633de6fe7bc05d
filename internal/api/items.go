package api

import (
	"database/sql"
	"net/http"

	"github.com/rewear-hq/rewear/internal/model"
	"github.com/rewear-hq/rewear/internal/store"
)

// ItemsHandler handles item listing endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Size          string  `json:"size"`
	Condition     string  `json:"condition"`
	Image         string  `json:"image"`
	Brand         string  `json:"brand"`
	OriginalPrice float64 `json:"original_price"`
}

type updateItemRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	Size          *string  `json:"size"`
	Condition     *string  `json:"condition"`
	Image         *string  `json:"image"`
	Brand         *string  `json:"brand"`
	Status        *string  `json:"status"`
	OriginalPrice *float64 `json:"original_price"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := store.ListItems(r.Context(), h.DB, store.ItemFilter{
		Status:     q.Get("status"),
		Category:   q.Get("category"),
		UploaderID: q.Get("uploader"),
		Search:     q.Get("q"),
		Sort:       q.Get("sort"),
	})
	if err != nil {
		storeError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. The uploader is always the
// authenticated user; the swap value is computed server-side.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, store.CreateItemParams{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Size:          req.Size,
		Condition:     req.Condition,
		Image:         req.Image,
		Brand:         req.Brand,
		OriginalPrice: req.OriginalPrice,
		UploaderID:    claims.UserID,
		UploaderName:  claims.Name,
	})
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}. Only the uploader or an admin may edit.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if item.UploaderID != claims.UserID && !claims.Admin {
		jsonError(w, http.StatusForbidden, "not your listing")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := store.UpdateItem(r.Context(), h.DB, id, store.ItemUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Size:          req.Size,
		Condition:     req.Condition,
		Image:         req.Image,
		Brand:         req.Brand,
		Status:        req.Status,
		OriginalPrice: req.OriginalPrice,
	})
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}. Only the uploader or an admin
// may delete, and not while a pending swap request references the item.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if item.UploaderID != claims.UserID && !claims.Admin {
		jsonError(w, http.StatusForbidden, "not your listing")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// View handles POST /api/items/{id}/view.
func (h *ItemsHandler) View(w http.ResponseWriter, r *http.Request) {
	if err := store.IncrementItemViews(r.Context(), h.DB, r.PathValue("id")); err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "view recorded"})
}

// Like handles POST /api/items/{id}/like.
func (h *ItemsHandler) Like(w http.ResponseWriter, r *http.Request) {
	if err := store.LikeItem(r.Context(), h.DB, r.PathValue("id")); err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "liked"})
}

// Unlike handles DELETE /api/items/{id}/like.
func (h *ItemsHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	if err := store.UnlikeItem(r.Context(), h.DB, r.PathValue("id")); err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "unliked"})
}
