package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/playmaker86/activity-booking/internal/container"
	"github.com/playmaker86/activity-booking/pkg/database"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
	db        *database.PostgresDB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container, db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{container: container, db: db}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := "healthy"
	code := http.StatusOK

	if err := h.db.Health(ctx); err != nil {
		checks["database"] = err.Error()
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if redisClient := h.container.GetRedisClient(); redisClient != nil {
		if err := redisClient.Health(ctx); err != nil {
			checks["redis"] = err.Error()
			// Cache loss degrades, it does not take the service down.
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	respondJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   "activity-booking",
		Checks:    checks,
	})
}
