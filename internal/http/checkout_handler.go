package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/service"
)

type CheckoutService interface {
	StageSingle(ctx context.Context, user *domain.User, itemID int64, quantity int) (*domain.PendingOrder, error)
	StageFromCart(ctx context.Context, user *domain.User) (*domain.PendingOrder, error)
	Pending(ctx context.Context, user *domain.User) (*domain.PendingOrder, error)
	BeginCheckout(ctx context.Context, user *domain.User, selectedIDs []int64, quantities map[int64]int) (*domain.PendingOrder, error)
	ResendCode(ctx context.Context, user *domain.User) error
	Verify(ctx context.Context, user *domain.User, code string) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
}

func NewCheckoutHandler(checkout CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type StageSingleRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CheckoutHandler) StageSingle(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	req := StageSingleRequestDTO{Quantity: 1}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	pending, err := h.checkout.StageSingle(r.Context(), user, itemID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPendingOrderDTO(pending))
}

func (h *CheckoutHandler) StageFromCart(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	pending, err := h.checkout.StageFromCart(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPendingOrderDTO(pending))
}

func (h *CheckoutHandler) Pending(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	pending, err := h.checkout.Pending(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPendingOrderDTO(pending))
}

type BeginCheckoutRequestDTO struct {
	SelectedItems []int64           `json:"selected_items"`
	Quantities    map[string]string `json:"quantities"`
}

func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req BeginCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Quantities arrive as form-style strings; any parse failure voids the
	// whole update, same as a quantity below 1.
	quantities := make(map[int64]int, len(req.Quantities))
	for rawID, rawQty := range req.Quantities {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_item_id", "quantity keys must be item ids")
			return
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil {
			handleServiceError(w, service.ErrInvalidQuantity)
			return
		}
		quantities[id] = qty
	}

	pending, err := h.checkout.BeginCheckout(r.Context(), user, req.SelectedItems, quantities)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPendingOrderDTO(pending))
}

func (h *CheckoutHandler) Resend(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := h.checkout.ResendCode(r.Context(), user); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "a new verification code was sent"})
}

type VerifyRequestDTO struct {
	Code string `json:"code"`
}

func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req VerifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.Verify(r.Context(), user, req.Code)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toOrderDTO(order))
}
