package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingLine is a snapshot of one catalog item inside a draft order.
type PendingLine struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Image     string          `json:"image,omitempty"`
}

// PendingOrder is the transient draft built from the cart or a direct buy.
// At most one exists per user; staging a new one overwrites the prior one.
// BeginCheckout upgrades it in place with a verification code and expiry.
type PendingOrder struct {
	Lines      []PendingLine   `json:"lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	CreatedAt  time.Time       `json:"created_at"`
	Code       string          `json:"code,omitempty"`
	CodeExpiry time.Time       `json:"code_expiry,omitempty"`
}

// CodeSent reports whether checkout has started for this draft.
func (p *PendingOrder) CodeSent() bool {
	return p.Code != ""
}

// Recompute refreshes every line total and the grand total from unit prices
// and quantities.
func (p *PendingOrder) Recompute() {
	total := decimal.Zero
	for i := range p.Lines {
		p.Lines[i].Total = LineTotal(p.Lines[i].UnitPrice, p.Lines[i].Quantity)
		total = total.Add(p.Lines[i].Total)
	}
	p.GrandTotal = total.Round(2)
}
