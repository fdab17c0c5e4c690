package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/middleware"
	"github.com/playmaker86/activity-booking/internal/service"
	"github.com/playmaker86/activity-booking/pkg/errors"
)

// BookingHandler handles booking lifecycle requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RegisterRoutes mounts the booking routes; all require authentication
func (h *BookingHandler) RegisterRoutes(r chi.Router) {
	r.Post("/bookings", h.Create)
	r.Get("/bookings/my", h.ListMine)
	r.Get("/bookings/{id}", h.Get)
	r.Put("/bookings/{id}/cancel", h.Cancel)
	r.Put("/bookings/{id}/checkin", h.CheckIn)
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondAppError(w, errors.NewAuthenticationError("authentication required"))
		return
	}

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, errors.NewValidationError("invalid request body", nil))
		return
	}

	if err := validateCreateBookingRequest(&req); err != nil {
		respondAppError(w, errors.NewValidationError(err.Error(), nil))
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), claims.UserID, &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, booking)
}

// ListMine handles GET /api/bookings/my
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondAppError(w, errors.NewAuthenticationError("authentication required"))
		return
	}

	list, err := h.bookingService.GetUserBookings(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// Get handles GET /api/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondAppError(w, errors.NewAuthenticationError("authentication required"))
		return
	}

	id, err := idURLParam(r, "id")
	if err != nil {
		respondAppError(w, errors.NewValidationError("invalid booking id", nil))
		return
	}

	booking, err := h.bookingService.GetBooking(r.Context(), id, claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, booking)
}

// Cancel handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondAppError(w, errors.NewAuthenticationError("authentication required"))
		return
	}

	id, err := idURLParam(r, "id")
	if err != nil {
		respondAppError(w, errors.NewValidationError("invalid booking id", nil))
		return
	}

	if err := h.bookingService.CancelBooking(r.Context(), id, claims.UserID); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
}

// CheckIn handles PUT /api/bookings/{id}/checkin
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respondAppError(w, errors.NewAuthenticationError("authentication required"))
		return
	}

	id, err := idURLParam(r, "id")
	if err != nil {
		respondAppError(w, errors.NewValidationError("invalid booking id", nil))
		return
	}

	if err := h.bookingService.CheckInBooking(r.Context(), id, claims.UserID); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "checked in"})
}

// validateCreateBookingRequest checks the request shape before it reaches the
// lifecycle engine
func validateCreateBookingRequest(req *domain.CreateBookingRequest) error {
	if req.ActivityID < 1 {
		return fmt.Errorf("activity_id is required")
	}
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if len(req.Phone) < 5 || len(req.Phone) > 20 {
		return fmt.Errorf("phone must be between 5 and 20 characters")
	}
	if req.Participants < 1 {
		return fmt.Errorf("participants must be at least 1")
	}
	return nil
}
