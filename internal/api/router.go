package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
// Browsing items and profiles is public; every mutation requires auth.
func NewRouter(db *sql.DB, jwtSecret, adminEmail string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, AdminEmail: adminEmail}
	itemsHandler := &ItemsHandler{DB: db}
	swapsHandler := &SwapsHandler{DB: db}
	usersHandler := &UsersHandler{DB: db}
	rewardsHandler := &RewardsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret)

	// Public: signup, login, browsing.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("POST /api/items/{id}/view", itemsHandler.View)
	mux.HandleFunc("GET /api/users/{id}", usersHandler.Get)
	mux.HandleFunc("GET /api/rewards", rewardsHandler.List)

	// Session.
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Items.
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/items/{id}/like", authMW(http.HandlerFunc(itemsHandler.Like)))
	mux.Handle("DELETE /api/items/{id}/like", authMW(http.HandlerFunc(itemsHandler.Unlike)))

	// Swap requests.
	mux.Handle("POST /api/swaps", authMW(http.HandlerFunc(swapsHandler.Create)))
	mux.Handle("GET /api/swaps", authMW(http.HandlerFunc(swapsHandler.List)))
	mux.Handle("GET /api/swaps/{id}", authMW(http.HandlerFunc(swapsHandler.Get)))
	mux.Handle("PUT /api/swaps/{id}/status", authMW(http.HandlerFunc(swapsHandler.UpdateStatus)))

	// Rewards and points.
	mux.Handle("POST /api/rewards/{id}/redeem", authMW(http.HandlerFunc(rewardsHandler.Redeem)))
	mux.Handle("GET /api/redemptions", authMW(http.HandlerFunc(rewardsHandler.Redemptions)))
	mux.Handle("GET /api/points/history", authMW(http.HandlerFunc(rewardsHandler.PointsHistory)))

	// Admin.
	mux.Handle("GET /api/users", authMW(RequireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("DELETE /api/users/{id}", authMW(RequireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
