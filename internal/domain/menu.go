package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemCategory string

const (
	CategoryDish  ItemCategory = "Dish"
	CategorySweet ItemCategory = "Sweet"
)

func (c ItemCategory) Valid() bool {
	return c == CategoryDish || c == CategorySweet
}

// MenuItem is a sellable catalog item. Order lines copy its fields at
// confirmation time and never reference it back, so later edits do not
// rewrite historical orders.
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    ItemCategory    `json:"category"`
	Image       string          `json:"image,omitempty"`
	Popular     bool            `json:"popular"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CreatedBy   int64           `json:"created_by,omitempty"`
}
