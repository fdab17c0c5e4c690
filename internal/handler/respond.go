package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/playmaker86/activity-booking/pkg/errors"
)

// respondJSON writes data as a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondAppError writes a structured error response
func respondAppError(w http.ResponseWriter, appErr *errors.AppError) {
	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	respondJSON(w, appErr.StatusCode, response)
}

// respondDomainError maps a service error to its transport shape
func respondDomainError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		respondAppError(w, appErr)
		return
	}
	respondAppError(w, errors.FromDomain(err))
}
