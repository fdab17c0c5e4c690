package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/middleware"
	"github.com/playmaker86/activity-booking/internal/service"
	"github.com/playmaker86/activity-booking/pkg/errors"
)

// UserHandler handles user profile requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes mounts the user routes; all require authentication
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users/me", h.Me)
	r.Put("/users/me", h.UpdateMe)
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondAppError(w, errors.NewAuthenticationError("authentication required"))
		return
	}

	user, err := h.userService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateMe handles PUT /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondAppError(w, errors.NewAuthenticationError("authentication required"))
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, errors.NewValidationError("invalid request body", nil))
		return
	}
	if req.Gender != nil && (*req.Gender < 0 || *req.Gender > 2) {
		respondAppError(w, errors.NewValidationError("gender must be 0, 1 or 2", nil))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), claims.UserID, &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
