package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusOnTheWay  OrderStatus = "on_the_way"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOnTheWay, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is the durable record produced by a verified checkout.
//
// DeliveryOTP and DeliveryOTPExpiry are both nil or both set; a completed or
// cancelled order never holds a live pair. LeftTime is the remaining-seconds
// snapshot stored at the last status update, not a live countdown; the
// late-cancellation guard reads the stored value as-is.
type Order struct {
	ID                   uuid.UUID       `json:"id"`
	UserID               int64           `json:"user_id"`
	Status               OrderStatus     `json:"status"`
	ConfirmedAt          time.Time       `json:"confirmed_at"`
	EtaMinutes           int             `json:"eta_minutes"`
	EstimateDeliveryTime time.Time       `json:"estimate_delivery_time"`
	ActualDeliveryTime   time.Time       `json:"actual_delivery_time"`
	DeliveryOTP          *string         `json:"-"`
	DeliveryOTPExpiry    *time.Time      `json:"-"`
	Delivered            bool            `json:"delivered"`
	DeliveredAt          *time.Time      `json:"delivered_at,omitempty"`
	GrandTotal           decimal.Decimal `json:"grand_total"`
	CancelledBy          string          `json:"cancelled_by,omitempty"`
	CancelledAt          *time.Time      `json:"cancelled_at,omitempty"`
	LeftTime             *int            `json:"left_time,omitempty"`
	Lines                []OrderLine     `json:"lines"`
}

// HasLiveOTP reports whether a delivery OTP challenge is outstanding.
func (o *Order) HasLiveOTP() bool {
	return o.DeliveryOTP != nil && o.DeliveryOTPExpiry != nil
}

// ClearOTP drops the challenge pair after a successful verification.
func (o *Order) ClearOTP() {
	o.DeliveryOTP = nil
	o.DeliveryOTPExpiry = nil
}

// OrderLine is an immutable snapshot of a menu item at confirmation time.
type OrderLine struct {
	ID       int64           `json:"id"`
	OrderID  uuid.UUID       `json:"order_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// Total is price*quantity rounded to 2 decimals.
func (l OrderLine) Total() decimal.Decimal {
	return LineTotal(l.Price, l.Quantity)
}
