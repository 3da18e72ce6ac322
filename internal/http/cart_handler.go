package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

type CartService interface {
	Add(ctx context.Context, user *domain.User, itemID int64) (string, error)
	Remove(ctx context.Context, user *domain.User, itemID int64) error
	Increase(ctx context.Context, user *domain.User, itemID int64) error
	Decrease(ctx context.Context, user *domain.User, itemID int64) error
	View(ctx context.Context, user *domain.User) (*domain.CartView, error)
}

type CartHandler struct {
	cart CartService
}

func NewCartHandler(cart CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	view, err := h.cart.View(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	name, err := h.cart.Add(r.Context(), user, itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.respondView(w, r, user, http.StatusCreated, fmt.Sprintf("%s successfully added to your cart", name))
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.cart.Remove(r.Context(), user, itemID); err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondView(w, r, user, http.StatusOK, "")
}

func (h *CartHandler) Increase(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.cart.Increase(r.Context(), user, itemID); err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondView(w, r, user, http.StatusOK, "")
}

func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.cart.Decrease(r.Context(), user, itemID); err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondView(w, r, user, http.StatusOK, "")
}

type CartResponseDTO struct {
	Message string      `json:"message,omitempty"`
	Cart    CartViewDTO `json:"cart"`
}

func (h *CartHandler) respondView(w http.ResponseWriter, r *http.Request, user *domain.User, status int, message string) {
	view, err := h.cart.View(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, status, CartResponseDTO{
		Message: message,
		Cart:    toCartViewDTO(view),
	})
}
