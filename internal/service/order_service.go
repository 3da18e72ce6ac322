package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/notifier"
	"github.com/arun-kumar2004/TastyCart/internal/otp"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
)

// OrderService owns the delivery lifecycle of durable orders:
// pending -> on_the_way -> completed, with cancellation possible from either
// open state via OTP challenges.
type OrderService struct {
	orders      repository.OrderRepository
	users       repository.UserRepository
	cancelCodes otp.Store
	notify      notifier.Notifier

	now     func() time.Time
	genCode func(n int) string
}

func NewOrderService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	cancelCodes otp.Store,
	notify notifier.Notifier,
) *OrderService {
	return &OrderService{
		orders:      orders,
		users:       users,
		cancelCodes: cancelCodes,
		notify:      notify,
		now:         time.Now,
		genCode:     numericCode,
	}
}

// List returns every order for service actors, the actor's own otherwise,
// oldest first.
func (s *OrderService) List(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	if actor.IsService() {
		orders, err := s.orders.ListAllOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		return orders, nil
	}

	orders, err := s.orders.ListOrdersByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, actor *domain.User, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if RoleOf(actor, order) == RoleOther {
		return nil, ErrForbidden
	}
	return order, nil
}

// RequestDeliveryOTP issues a challenge on the order row. For the owner this
// is the cancellation entry point, so the stored left_time snapshot gates it:
// below 1800 seconds the order can no longer be cancelled. A completed or
// cancelled order takes no further challenges.
func (s *OrderService) RequestDeliveryOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}

	role := RoleOf(actor, order)
	if role == RoleOther {
		return ErrForbidden
	}
	if order.Status.IsTerminal() {
		return ErrOrderClosed
	}
	if role == RoleOwner && order.LeftTime != nil && *order.LeftTime < 1800 {
		return ErrTooLateToCancel
	}

	code := s.genCode(deliveryOTPLength)
	expiry := s.now().Add(codeExpiry)
	order.DeliveryOTP = &code
	order.DeliveryOTPExpiry = &expiry

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("store delivery otp: %w", err)
	}

	s.notifyOwner(ctx, order, func(owner *domain.User) notifier.Message {
		return notifier.DeliveryOTPMessage(owner, order, code, expiry)
	})
	return nil
}

// VerifyDeliveryOTP resolves an outstanding challenge. A service actor
// completes the delivery; the owner cancels the order; anyone else is
// rejected. Ownership wins when the two roles overlap.
func (s *OrderService) VerifyDeliveryOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID, submitted string) (*domain.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status.IsTerminal() {
		return nil, ErrOrderClosed
	}
	if !order.HasLiveOTP() {
		return nil, ErrNoOtpPending
	}
	now := s.now()
	if now.After(*order.DeliveryOTPExpiry) {
		return nil, ErrExpired
	}
	if submitted == "" || submitted != *order.DeliveryOTP {
		return nil, ErrMismatch
	}

	zero := 0
	switch RoleOf(actor, order) {
	case RoleOwner:
		order.Status = domain.OrderStatusCancelled
		order.CancelledBy = fmt.Sprintf("user (%s)", actor.Username)
		order.CancelledAt = &now
		order.LeftTime = &zero
		order.ClearOTP()
	case RoleService:
		order.Status = domain.OrderStatusCompleted
		order.Delivered = true
		order.DeliveredAt = &now
		order.LeftTime = &zero
		order.ClearOTP()
	default:
		return nil, ErrForbidden
	}

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// UpdateStatus is the service-role transition driver. on_the_way starts the
// 30-minute delivery window and records the left_time snapshot the
// cancellation guard reads later; the snapshot is deliberately not
// recomputed on subsequent reads.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.User, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !actor.IsService() {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order.Status = status
	switch status {
	case domain.OrderStatusOnTheWay:
		order.ActualDeliveryTime = now.Add(30 * time.Minute)
		left := 30 * 60
		order.LeftTime = &left
	case domain.OrderStatusCompleted:
		order.Delivered = true
		order.DeliveredAt = &now
		order.ClearOTP()
	case domain.OrderStatusCancelled:
		tag := "admin"
		if actor.ID == order.UserID {
			tag = "user"
		}
		order.CancelledBy = fmt.Sprintf("%s (%s)", tag, actor.Username)
		order.CancelledAt = &now
		order.ClearOTP()
	}

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// Delete hard-deletes the order and its lines. Irreversible, service only.
func (s *OrderService) Delete(ctx context.Context, actor *domain.User, orderID uuid.UUID) error {
	if !actor.IsService() {
		return ErrForbidden
	}

	if err := s.orders.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// SendCancelOTP issues a short code through the standalone cancellation
// path. The code lives in the TTL store, not on the order row.
func (s *OrderService) SendCancelOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if RoleOf(actor, order) != RoleOwner {
		return ErrForbidden
	}
	if order.Status.IsTerminal() {
		return ErrOrderClosed
	}

	code := cancelCode()
	if err := s.cancelCodes.Set(ctx, order.ID.String(), code); err != nil {
		return fmt.Errorf("store cancel otp: %w", err)
	}

	s.notifyOwner(ctx, order, func(owner *domain.User) notifier.Message {
		return notifier.CancelOTPMessage(owner, order, code)
	})
	return nil
}

// VerifyCancelOTP cancels the order when the submitted code matches the
// stored one; an expired or never-issued entry reads as a mismatch.
func (s *OrderService) VerifyCancelOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID, submitted string) (*domain.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if RoleOf(actor, order) != RoleOwner {
		return nil, ErrForbidden
	}
	if order.Status.IsTerminal() {
		return nil, ErrOrderClosed
	}

	stored, err := s.cancelCodes.Get(ctx, order.ID.String())
	if err != nil {
		if errors.Is(err, otp.ErrCodeNotFound) {
			return nil, ErrMismatch
		}
		return nil, fmt.Errorf("load cancel otp: %w", err)
	}
	if submitted == "" || submitted != stored {
		return nil, ErrMismatch
	}

	now := s.now()
	order.Status = domain.OrderStatusCancelled
	order.CancelledBy = fmt.Sprintf("user (%s)", actor.Username)
	order.CancelledAt = &now
	order.ClearOTP()

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err := s.cancelCodes.Delete(ctx, order.ID.String()); err != nil {
		log.Printf("evict cancel otp for order %s: %v", order.ID, err)
	}
	return order, nil
}

func (s *OrderService) loadOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}

// notifyOwner dispatches to the order's owner; failures are logged, never
// propagated, so the already committed state change stands.
func (s *OrderService) notifyOwner(ctx context.Context, order *domain.Order, build func(*domain.User) notifier.Message) {
	owner, err := s.users.GetUser(ctx, order.UserID)
	if err != nil {
		log.Printf("load owner of order %s: %v", order.ID, err)
		return
	}
	if err := s.notify.Send(ctx, build(owner)); err != nil {
		log.Printf("otp dispatch for order %s: %v", order.ID, err)
	}
}
