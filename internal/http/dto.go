package http

import (
	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

// Boundary rule: money crosses as 2-decimal strings, timestamps as Unix
// epoch seconds.

type MenuItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`
	Popular     bool   `json:"popular"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

func toMenuItemDTO(item *domain.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price.StringFixed(2),
		Category:    string(item.Category),
		Image:       item.Image,
		Popular:     item.Popular,
		CreatedAt:   item.CreatedAt.Unix(),
		UpdatedAt:   item.UpdatedAt.Unix(),
	}
}

func toMenuItemDTOs(items []domain.MenuItem) []MenuItemDTO {
	dtos := make([]MenuItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toMenuItemDTO(&items[i]))
	}
	return dtos
}

type CartLineDTO struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

type CartViewDTO struct {
	Lines      []CartLineDTO `json:"lines"`
	GrandTotal string        `json:"grand_total"`
}

func toCartViewDTO(view *domain.CartView) CartViewDTO {
	dto := CartViewDTO{
		Lines:      make([]CartLineDTO, 0, len(view.Lines)),
		GrandTotal: view.GrandTotal.StringFixed(2),
	}
	for _, line := range view.Lines {
		dto.Lines = append(dto.Lines, CartLineDTO{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price.StringFixed(2),
			Image:    line.Image,
			Category: string(line.Category),
			Quantity: line.Quantity,
			Total:    line.Total.StringFixed(2),
		})
	}
	return dto
}

type PendingLineDTO struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
	Image     string `json:"image,omitempty"`
}

type PendingOrderDTO struct {
	Lines      []PendingLineDTO `json:"lines"`
	GrandTotal string           `json:"grand_total"`
	CreatedAt  int64            `json:"created_at"`
	CodeSent   bool             `json:"code_sent"`
	CodeExpiry int64            `json:"code_expiry,omitempty"`
}

func toPendingOrderDTO(pending *domain.PendingOrder) PendingOrderDTO {
	dto := PendingOrderDTO{
		Lines:      make([]PendingLineDTO, 0, len(pending.Lines)),
		GrandTotal: pending.GrandTotal.StringFixed(2),
		CreatedAt:  pending.CreatedAt.Unix(),
		CodeSent:   pending.CodeSent(),
	}
	if pending.CodeSent() {
		dto.CodeExpiry = pending.CodeExpiry.Unix()
	}
	for _, line := range pending.Lines {
		dto.Lines = append(dto.Lines, PendingLineDTO{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Quantity:  line.Quantity,
			Total:     line.Total.StringFixed(2),
			Image:     line.Image,
		})
	}
	return dto
}

type OrderLineDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
	Image    string `json:"image,omitempty"`
}

type OrderDTO struct {
	ID                   string         `json:"id"`
	UserID               int64          `json:"user_id"`
	Status               string         `json:"status"`
	ConfirmedAt          int64          `json:"confirmed_at"`
	EtaMinutes           int            `json:"eta_minutes"`
	EstimateDeliveryTime int64          `json:"estimate_delivery_time"`
	ActualDeliveryTime   int64          `json:"actual_delivery_time"`
	Delivered            bool           `json:"delivered"`
	DeliveredAt          *int64         `json:"delivered_at,omitempty"`
	GrandTotal           string         `json:"grand_total"`
	CancelledBy          string         `json:"cancelled_by,omitempty"`
	CancelledAt          *int64         `json:"cancelled_at,omitempty"`
	LeftTime             *int           `json:"left_time,omitempty"`
	Lines                []OrderLineDTO `json:"lines"`
}

func toOrderDTO(order *domain.Order) OrderDTO {
	dto := OrderDTO{
		ID:                   order.ID.String(),
		UserID:               order.UserID,
		Status:               string(order.Status),
		ConfirmedAt:          order.ConfirmedAt.Unix(),
		EtaMinutes:           order.EtaMinutes,
		EstimateDeliveryTime: order.EstimateDeliveryTime.Unix(),
		ActualDeliveryTime:   order.ActualDeliveryTime.Unix(),
		Delivered:            order.Delivered,
		GrandTotal:           order.GrandTotal.StringFixed(2),
		CancelledBy:          order.CancelledBy,
		LeftTime:             order.LeftTime,
		Lines:                make([]OrderLineDTO, 0, len(order.Lines)),
	}
	if order.DeliveredAt != nil {
		ts := order.DeliveredAt.Unix()
		dto.DeliveredAt = &ts
	}
	if order.CancelledAt != nil {
		ts := order.CancelledAt.Unix()
		dto.CancelledAt = &ts
	}
	for _, line := range order.Lines {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price.StringFixed(2),
			Quantity: line.Quantity,
			Total:    line.Total().StringFixed(2),
			Image:    line.Image,
		})
	}
	return dto
}

func toOrderDTOs(orders []*domain.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, toOrderDTO(order))
	}
	return dtos
}
