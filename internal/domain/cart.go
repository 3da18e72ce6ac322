package domain

import "github.com/shopspring/decimal"

// CartLine is one (user, item) row; unique per pair, quantity always >= 1.
// A decrement that would reach zero deletes the row instead.
type CartLine struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"user_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type CartViewLine struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Category ItemCategory    `json:"category"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

type CartView struct {
	Lines      []CartViewLine  `json:"lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// LineTotal computes price*quantity rounded to 2 decimals. Totals are
// rounded per line and again at the sum so the displayed grand total always
// equals the sum of the displayed line totals.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
