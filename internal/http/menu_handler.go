package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

type CatalogService interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Popular(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, itemID int64) (*domain.MenuItem, error)
	Create(ctx context.Context, actor *domain.User, item *domain.MenuItem) error
}

type MenuHandler struct {
	catalog CatalogService
}

func NewMenuHandler(catalog CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toMenuItemDTOs(items))
}

func (h *MenuHandler) Popular(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Popular(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toMenuItemDTOs(items))
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	item, err := h.catalog.Get(r.Context(), itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toMenuItemDTO(item))
}

type CreateItemRequestDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Popular     bool   `json:"popular"`
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req CreateItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a decimal string")
		return
	}

	item := &domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    domain.ItemCategory(req.Category),
		Image:       req.Image,
		Popular:     req.Popular,
	}
	if err := h.catalog.Create(r.Context(), user, item); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toMenuItemDTO(item))
}

func parseItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	itemIDStr := chi.URLParam(r, "item_id")
	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return 0, false
	}
	return itemID, true
}
