package api

import (
	"database/sql"
	"net/http"

	"github.com/rewear-hq/rewear/internal/model"
	"github.com/rewear-hq/rewear/internal/store"
)

// UsersHandler handles user profile and admin endpoints.
type UsersHandler struct {
	DB *sql.DB
}

// publicProfile is the subset of a user visible to other members.
type publicProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	TotalSwaps int    `json:"total_swaps"`
	Level      string `json:"level"`
}

// List handles GET /api/users (admin only).
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}, returning a public profile.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := store.GetUser(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}
	if user.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	jsonResponse(w, http.StatusOK, publicProfile{
		ID:         user.ID,
		Name:       user.Name,
		Points:     user.Points,
		TotalSwaps: user.TotalSwaps,
		Level:      user.Level,
	})
}

// Delete handles DELETE /api/users/{id} (admin only).
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteUser(r.Context(), h.DB, r.PathValue("id")); err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
