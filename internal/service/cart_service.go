package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
)

// CartService is the per-user ledger of (item, quantity) lines.
type CartService struct {
	menu repository.MenuRepository
	cart repository.CartRepository
}

func NewCartService(menu repository.MenuRepository, cart repository.CartRepository) *CartService {
	return &CartService{
		menu: menu,
		cart: cart,
	}
}

// Add creates the line at quantity 1 or increments an existing one, and
// returns the item's display name for confirmation messaging.
func (s *CartService) Add(ctx context.Context, user *domain.User, itemID int64) (string, error) {
	item, err := s.menu.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load menu item: %w", err)
	}

	if err := s.cart.UpsertLine(ctx, user.ID, itemID); err != nil {
		return "", fmt.Errorf("add cart line: %w", err)
	}
	return item.Name, nil
}

// Remove deletes the matching line if present; removing an absent line is
// not an error.
func (s *CartService) Remove(ctx context.Context, user *domain.User, itemID int64) error {
	if err := s.cart.DeleteLine(ctx, user.ID, itemID); err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

func (s *CartService) Increase(ctx context.Context, user *domain.User, itemID int64) error {
	line, err := s.cart.GetLine(ctx, user.ID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return nil
		}
		return fmt.Errorf("load cart line: %w", err)
	}

	if err := s.cart.SetQuantity(ctx, user.ID, itemID, line.Quantity+1); err != nil {
		return fmt.Errorf("increase cart line: %w", err)
	}
	return nil
}

// Decrease drops the quantity by one; a line at quantity 1 is deleted
// instead of reaching 0.
func (s *CartService) Decrease(ctx context.Context, user *domain.User, itemID int64) error {
	line, err := s.cart.GetLine(ctx, user.ID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return nil
		}
		return fmt.Errorf("load cart line: %w", err)
	}

	if line.Quantity > 1 {
		if err := s.cart.SetQuantity(ctx, user.ID, itemID, line.Quantity-1); err != nil {
			return fmt.Errorf("decrease cart line: %w", err)
		}
		return nil
	}

	if err := s.cart.DeleteLine(ctx, user.ID, itemID); err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// View returns the cart lines in insertion order plus the grand total.
func (s *CartService) View(ctx context.Context, user *domain.User) (*domain.CartView, error) {
	lines, err := s.cart.ListLines(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}

	view := &domain.CartView{GrandTotal: decimal.Zero}
	for _, line := range lines {
		item, err := s.menu.GetItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				// the item was removed from the catalog after being carted
				continue
			}
			return nil, fmt.Errorf("load menu item: %w", err)
		}

		total := domain.LineTotal(item.Price, line.Quantity)
		view.Lines = append(view.Lines, domain.CartViewLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Category: item.Category,
			Quantity: line.Quantity,
			Total:    total,
		})
		view.GrandTotal = view.GrandTotal.Add(total)
	}
	view.GrandTotal = view.GrandTotal.Round(2)

	return view, nil
}
