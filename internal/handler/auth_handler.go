package handler

import (
	"encoding/json"
	"net/http"

	"github.com/playmaker86/activity-booking/internal/container"
	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/pkg/errors"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	container *container.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *container.Container) *AuthHandler {
	return &AuthHandler{container: container}
}

// WxLogin handles POST /api/auth/wx-login
func (h *AuthHandler) WxLogin(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	var req domain.WxLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, errors.NewValidationError("invalid request body", nil))
		return
	}
	if req.Code == "" {
		respondAppError(w, errors.NewValidationError("code is required", nil))
		return
	}

	token, err := h.container.GetAuthService().Login(r.Context(), req.Code)
	if err != nil {
		log.WithError(err).Warn("login failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, token)
}
