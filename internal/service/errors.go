package service

import "errors"

var (
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("not allowed")
	ErrNotFound          = errors.New("not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoSelection       = errors.New("no items selected")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrIncompleteProfile = errors.New("phone number and address required")
	ErrNoPendingOrder    = errors.New("no pending order")
	ErrExpired           = errors.New("code expired")
	ErrMismatch          = errors.New("invalid code")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidItem       = errors.New("invalid menu item")
	ErrNoOtpPending      = errors.New("no OTP generated")
	ErrOrderClosed       = errors.New("order already completed or cancelled")
	ErrTooLateToCancel   = errors.New("order can no longer be cancelled")
	ErrNotifierFailure   = errors.New("failed to send notification")
)
