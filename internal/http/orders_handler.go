package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

type OrderService interface {
	List(ctx context.Context, actor *domain.User) ([]*domain.Order, error)
	Get(ctx context.Context, actor *domain.User, orderID uuid.UUID) (*domain.Order, error)
	RequestDeliveryOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID) error
	VerifyDeliveryOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID, code string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, actor *domain.User, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, actor *domain.User, orderID uuid.UUID) error
	SendCancelOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID) error
	VerifyCancelOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID, code string) (*domain.Order, error)
}

type OrdersHandler struct {
	orders OrderService
}

func NewOrdersHandler(orders OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	orders, err := h.orders.List(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTOs(orders))
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), user, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

func (h *OrdersHandler) RequestDeliveryOTP(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	if err := h.orders.RequestDeliveryOTP(r.Context(), user, orderID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

type OTPRequestDTO struct {
	OTP string `json:"otp"`
}

func (h *OrdersHandler) VerifyDeliveryOTP(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req OTPRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.VerifyDeliveryOTP(r.Context(), user, orderID, req.OTP)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), user, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), user, orderID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "order deleted permanently"})
}

func (h *OrdersHandler) SendCancelOTP(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	if err := h.orders.SendCancelOTP(r.Context(), user, orderID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "cancel OTP sent to your email"})
}

func (h *OrdersHandler) VerifyCancelOTP(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req OTPRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.VerifyCancelOTP(r.Context(), user, orderID, req.OTP)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

func parseOrderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orderIDStr := chi.URLParam(r, "order_id")
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return uuid.Nil, false
	}
	return orderID, true
}
