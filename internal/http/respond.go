package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/arun-kumar2004/TastyCart/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps the service error taxonomy to HTTP statuses.
func handleServiceError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNoPendingOrder):
		status, code = http.StatusNotFound, "no_pending_order"
	case errors.Is(err, service.ErrEmptyCart):
		status, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, service.ErrNoSelection):
		status, code = http.StatusBadRequest, "no_selection"
	case errors.Is(err, service.ErrInvalidQuantity):
		status, code = http.StatusBadRequest, "invalid_quantity"
	case errors.Is(err, service.ErrIncompleteProfile):
		status, code = http.StatusBadRequest, "incomplete_profile"
	case errors.Is(err, service.ErrExpired):
		status, code = http.StatusBadRequest, "code_expired"
	case errors.Is(err, service.ErrMismatch):
		status, code = http.StatusBadRequest, "code_mismatch"
	case errors.Is(err, service.ErrInvalidStatus):
		status, code = http.StatusBadRequest, "invalid_status"
	case errors.Is(err, service.ErrInvalidItem):
		status, code = http.StatusBadRequest, "invalid_item"
	case errors.Is(err, service.ErrNoOtpPending):
		status, code = http.StatusBadRequest, "no_otp_pending"
	case errors.Is(err, service.ErrOrderClosed):
		status, code = http.StatusConflict, "order_closed"
	case errors.Is(err, service.ErrTooLateToCancel):
		status, code = http.StatusConflict, "too_late_to_cancel"
	case errors.Is(err, service.ErrNotifierFailure):
		status, code = http.StatusBadGateway, "notifier_failure"
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, status, code, err.Error())
}
