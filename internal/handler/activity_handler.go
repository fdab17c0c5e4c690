package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/service"
	"github.com/playmaker86/activity-booking/pkg/errors"
)

// ActivityHandler handles activity catalog requests
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// RegisterPublicRoutes mounts the read-only catalog routes
func (h *ActivityHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/activities", h.List)
	r.Get("/activities/hot", h.Hot)
	r.Get("/activities/{id}", h.Get)
}

// RegisterProtectedRoutes mounts the organizer routes
func (h *ActivityHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/activities", h.Create)
	r.Put("/activities/{id}", h.Update)
	r.Delete("/activities/{id}", h.Delete)
}

// List handles GET /api/activities?page=&pageSize=&keyword=
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	query := domain.ActivityQuery{
		Page:     intQueryParam(r, "page", 1),
		PageSize: intQueryParam(r, "pageSize", 10),
		Keyword:  r.URL.Query().Get("keyword"),
	}

	list, err := h.activityService.GetActivities(r.Context(), query)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// Hot handles GET /api/activities/hot?limit=
func (h *ActivityHandler) Hot(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r, "limit", 10)

	activities, err := h.activityService.GetHotActivities(r.Context(), limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activities)
}

// Get handles GET /api/activities/{id}
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idURLParam(r, "id")
	if err != nil {
		respondAppError(w, errors.NewValidationError("invalid activity id", nil))
		return
	}

	activity, err := h.activityService.GetActivityByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Create handles POST /api/activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, errors.NewValidationError("invalid request body", nil))
		return
	}

	activity, err := h.activityService.CreateActivity(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, activity)
}

// Update handles PUT /api/activities/{id}
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idURLParam(r, "id")
	if err != nil {
		respondAppError(w, errors.NewValidationError("invalid activity id", nil))
		return
	}

	var req domain.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, errors.NewValidationError("invalid request body", nil))
		return
	}

	activity, err := h.activityService.UpdateActivity(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Delete handles DELETE /api/activities/{id}
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idURLParam(r, "id")
	if err != nil {
		respondAppError(w, errors.NewValidationError("invalid activity id", nil))
		return
	}

	if err := h.activityService.DeleteActivity(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// intQueryParam parses a positive integer query parameter with a fallback
func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// idURLParam parses a numeric id from the URL path
func idURLParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}
