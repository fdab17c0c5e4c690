package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/middleware"
	"github.com/playmaker86/activity-booking/internal/service"
)

// stubBookingRepo returns canned outcomes so handler tests can exercise the
// HTTP status mapping without a database.
type stubBookingRepo struct {
	createErr  error
	booking    *domain.Booking
	bookingErr error
}

func (s *stubBookingRepo) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	booking.ID = 1
	booking.Status = domain.BookingStatusConfirmed
	return nil
}

func (s *stubBookingRepo) GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	return s.booking, s.bookingErr
}

func (s *stubBookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	if s.booking != nil {
		return []domain.Booking{*s.booking}, nil
	}
	return nil, nil
}

func (s *stubBookingRepo) Cancel(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	return s.booking, s.bookingErr
}

func (s *stubBookingRepo) CheckIn(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	return s.booking, s.bookingErr
}

func newBookingRouter(repo *stubBookingRepo) chi.Router {
	cache := service.NewCacheService(nil, zap.NewNop())
	svc := service.NewBookingService(repo, cache, zap.NewNop())
	h := NewBookingHandler(svc)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	claims := &domain.AuthClaims{UserID: 7, OpenID: "oX7f-abc123"}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

func TestBookingCreateEndpoint(t *testing.T) {
	validBody := []byte(`{"activity_id":1,"name":"Zhang Wei","phone":"13800138000","participants":2}`)

	t.Run("created", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/bookings", validBody))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var booking domain.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
		assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
		assert.EqualValues(t, 7, booking.UserID)
	})

	t.Run("missing auth claims", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{})
		rec := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(validBody))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/bookings", []byte(`{not json`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("full activity maps to conflict", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{createErr: domain.ErrActivityFull})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/bookings", validBody))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown activity maps to not found", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{createErr: domain.ErrActivityNotFound})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/bookings", validBody))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBookingCancelEndpoint(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{booking: &domain.Booking{
			ID: 3, UserID: 7, ActivityID: 1, Participants: 2, Status: domain.BookingStatusCancelled,
		}})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/bookings/3/cancel", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("already cancelled maps to conflict", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{bookingErr: domain.ErrInvalidBookingStatus})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/bookings/3/cancel", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("someone else's booking maps to not found", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{bookingErr: domain.ErrBookingNotFound})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/bookings/3/cancel", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("counter inconsistency maps to internal error", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{bookingErr: domain.ErrCounterUnderflow})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/bookings/3/cancel", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/bookings/abc/cancel", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBookingCheckInEndpoint(t *testing.T) {
	t.Run("checked in", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{booking: &domain.Booking{
			ID: 3, UserID: 7, ActivityID: 1, Status: domain.BookingStatusCompleted, CheckedIn: true,
		}})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/bookings/3/checkin", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("double check-in maps to conflict", func(t *testing.T) {
		router := newBookingRouter(&stubBookingRepo{bookingErr: domain.ErrAlreadyCheckedIn})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/bookings/3/checkin", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestValidateCreateBookingRequest(t *testing.T) {
	name := "Zhang Wei"
	phone := "13800138000"

	tests := []struct {
		testName string
		req      domain.CreateBookingRequest
		wantErr  string
	}{
		{"valid", domain.CreateBookingRequest{ActivityID: 1, Name: name, Phone: phone, Participants: 1}, ""},
		{"missing activity", domain.CreateBookingRequest{Name: name, Phone: phone, Participants: 1}, "activity_id is required"},
		{"missing name", domain.CreateBookingRequest{ActivityID: 1, Phone: phone, Participants: 1}, "name is required"},
		{"missing phone", domain.CreateBookingRequest{ActivityID: 1, Name: name, Participants: 1}, "phone is required"},
		{"phone too short", domain.CreateBookingRequest{ActivityID: 1, Name: name, Phone: "123", Participants: 1}, "phone must be between 5 and 20 characters"},
		{"phone too long", domain.CreateBookingRequest{ActivityID: 1, Name: name, Phone: "123456789012345678901", Participants: 1}, "phone must be between 5 and 20 characters"},
		{"zero participants", domain.CreateBookingRequest{ActivityID: 1, Name: name, Phone: phone}, "participants must be at least 1"},
		{"negative participants", domain.CreateBookingRequest{ActivityID: 1, Name: name, Phone: phone, Participants: -1}, "participants must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			err := validateCreateBookingRequest(&tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
