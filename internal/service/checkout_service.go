package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/notifier"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
	"github.com/arun-kumar2004/TastyCart/internal/session"
)

// CheckoutService drives a draft through the verification state machine:
// Staged -> CodeSent -> Verified. Verified creates the durable order and is
// the entry point of the delivery lifecycle at status pending.
type CheckoutService struct {
	menu     repository.MenuRepository
	cart     repository.CartRepository
	orders   repository.OrderRepository
	sessions session.Store
	notify   notifier.Notifier

	now     func() time.Time
	genCode func(n int) string
	genETA  func() int
}

func NewCheckoutService(
	menu repository.MenuRepository,
	cart repository.CartRepository,
	orders repository.OrderRepository,
	sessions session.Store,
	notify notifier.Notifier,
) *CheckoutService {
	return &CheckoutService{
		menu:     menu,
		cart:     cart,
		orders:   orders,
		sessions: sessions,
		notify:   notify,
		now:      time.Now,
		genCode:  numericCode,
		genETA:   func() int { return 30 + rand.Intn(61) }, // 30..90 minutes
	}
}

// StageSingle builds a draft from one catalog item, replacing any existing
// draft.
func (s *CheckoutService) StageSingle(ctx context.Context, user *domain.User, itemID int64, quantity int) (*domain.PendingOrder, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.menu.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load menu item: %w", err)
	}

	pending := &domain.PendingOrder{
		Lines: []domain.PendingLine{{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  quantity,
			Image:     item.Image,
		}},
		CreatedAt: s.now(),
	}
	pending.Recompute()

	if err := s.sessions.Put(ctx, user.ID, pending); err != nil {
		return nil, fmt.Errorf("store pending order: %w", err)
	}
	return pending, nil
}

// StageFromCart builds a draft from every cart line, replacing any existing
// draft.
func (s *CheckoutService) StageFromCart(ctx context.Context, user *domain.User) (*domain.PendingOrder, error) {
	lines, err := s.cart.ListLines(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	pending := &domain.PendingOrder{CreatedAt: s.now()}
	for _, line := range lines {
		item, err := s.menu.GetItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				continue
			}
			return nil, fmt.Errorf("load menu item: %w", err)
		}
		pending.Lines = append(pending.Lines, domain.PendingLine{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  line.Quantity,
			Image:     item.Image,
		})
	}
	if len(pending.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	pending.Recompute()

	if err := s.sessions.Put(ctx, user.ID, pending); err != nil {
		return nil, fmt.Errorf("store pending order: %w", err)
	}
	return pending, nil
}

// Pending returns the user's current draft.
func (s *CheckoutService) Pending(ctx context.Context, user *domain.User) (*domain.PendingOrder, error) {
	pending, err := s.sessions.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, session.ErrNoPendingOrder) {
			return nil, ErrNoPendingOrder
		}
		return nil, fmt.Errorf("load pending order: %w", err)
	}
	return pending, nil
}

// BeginCheckout filters the draft down to the selected lines, applies the
// quantity overrides, and attaches a fresh verification code before
// dispatching it. Nothing is persisted if validation or dispatch fails.
func (s *CheckoutService) BeginCheckout(ctx context.Context, user *domain.User, selectedIDs []int64, quantities map[int64]int) (*domain.PendingOrder, error) {
	pending, err := s.Pending(ctx, user)
	if err != nil {
		return nil, err
	}

	if !user.HasDeliveryProfile() {
		return nil, ErrIncompleteProfile
	}

	selected := make(map[int64]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var kept []domain.PendingLine
	for _, line := range pending.Lines {
		if !selected[line.ItemID] {
			continue
		}
		qty, ok := quantities[line.ItemID]
		if !ok || qty < 1 {
			return nil, ErrInvalidQuantity
		}
		line.Quantity = qty
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return nil, ErrNoSelection
	}

	pending.Lines = kept
	pending.Recompute()
	pending.Code = s.genCode(verificationCodeLength)
	pending.CodeExpiry = s.now().Add(codeExpiry)

	msg := notifier.VerificationCodeMessage(user, pending.Code, codeExpiry)
	if err := s.notify.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotifierFailure, err)
	}

	if err := s.sessions.Put(ctx, user.ID, pending); err != nil {
		return nil, fmt.Errorf("store pending order: %w", err)
	}
	return pending, nil
}

// ResendCode regenerates the code and expiry for a draft already in the
// CodeSent state.
func (s *CheckoutService) ResendCode(ctx context.Context, user *domain.User) error {
	pending, err := s.Pending(ctx, user)
	if err != nil {
		return err
	}
	if !pending.CodeSent() {
		return ErrNoPendingOrder
	}

	pending.Code = s.genCode(verificationCodeLength)
	pending.CodeExpiry = s.now().Add(codeExpiry)

	msg := notifier.ResendCodeMessage(user, pending.Code, codeExpiry)
	if err := s.notify.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrNotifierFailure, err)
	}

	if err := s.sessions.Put(ctx, user.ID, pending); err != nil {
		return fmt.Errorf("store pending order: %w", err)
	}
	return nil
}

// Verify checks the submitted code (expiry first, then match) and on
// success atomically creates the durable order with its lines, discards the
// draft, and best-effort cleans up the fulfilled cart lines.
func (s *CheckoutService) Verify(ctx context.Context, user *domain.User, submitted string) (*domain.Order, error) {
	pending, err := s.Pending(ctx, user)
	if err != nil {
		return nil, err
	}
	if !pending.CodeSent() {
		return nil, ErrNoPendingOrder
	}

	now := s.now()
	if now.After(pending.CodeExpiry) {
		return nil, ErrExpired
	}
	if submitted == "" || submitted != pending.Code {
		return nil, ErrMismatch
	}

	eta := s.genETA()
	arrival := now.Add(time.Duration(eta) * time.Minute)

	order := &domain.Order{
		ID:                   uuid.New(),
		UserID:               user.ID,
		Status:               domain.OrderStatusPending,
		ConfirmedAt:          now,
		EtaMinutes:           eta,
		EstimateDeliveryTime: arrival,
		ActualDeliveryTime:   arrival,
		GrandTotal:           pending.GrandTotal,
	}
	itemIDs := make([]int64, 0, len(pending.Lines))
	for _, line := range pending.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			OrderID:  order.ID,
			Name:     line.Name,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
			Image:    line.Image,
		})
		itemIDs = append(itemIDs, line.ItemID)
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.sessions.Delete(ctx, user.ID); err != nil {
		log.Printf("discard pending order for user %d: %v", user.ID, err)
	}

	// fulfilled cart lines: cleanup must never fail the order
	if err := s.cart.DeleteLinesByItemIDs(ctx, user.ID, itemIDs); err != nil {
		log.Printf("cart cleanup after order %s: %v", order.ID, err)
	}

	msg := notifier.OrderConfirmationMessage(user, order)
	if err := s.notify.Send(ctx, msg); err != nil {
		log.Printf("order confirmation dispatch for %s: %v", order.ID, err)
	}

	return order, nil
}
