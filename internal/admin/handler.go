// Package admin issues the credential behind the storefront admin panel.
// A single operator password is configured as a bcrypt hash; a successful
// login returns a short-lived bearer token that the catalog and upload
// routes validate on every call.
package admin

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sujatha-boutique/storefront/pkg/auth"
	"github.com/sujatha-boutique/storefront/pkg/logger"
)

// Handler serves the admin login endpoint.
type Handler struct {
	passwordHash string
}

func NewHandler(passwordHash string) *Handler {
	return &Handler{passwordHash: passwordHash}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/admin/login", h.Login).Methods("POST")
}

// Login handles POST /api/admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if h.passwordHash == "" {
		logger.Error(r.Context()).Msg("Admin login attempted but no password hash is configured")
		respond(w, http.StatusServiceUnavailable, map[string]string{"error": "Admin access is not configured"})
		return
	}

	if !auth.CheckPassword(h.passwordHash, req.Password) {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
		return
	}

	token, err := auth.GenerateToken("admin")
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to generate admin token")
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
		return
	}

	logger.Info(r.Context()).Msg("Admin session issued")
	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
