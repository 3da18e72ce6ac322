package repository

import "errors"

var (
	ErrItemNotFound     = errors.New("menu item not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
)
