package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
	"github.com/arun-kumar2004/TastyCart/internal/service"
)

type mockUserRepo struct {
	byToken map[string]*domain.User
}

func (m *mockUserRepo) GetUserByToken(_ context.Context, token string) (*domain.User, error) {
	user, ok := m.byToken[token]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetUser(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range m.byToken {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockCatalogService struct {
	list    func(ctx context.Context) ([]domain.MenuItem, error)
	popular func(ctx context.Context) ([]domain.MenuItem, error)
	get     func(ctx context.Context, itemID int64) (*domain.MenuItem, error)
	create  func(ctx context.Context, actor *domain.User, item *domain.MenuItem) error
}

func (m *mockCatalogService) List(ctx context.Context) ([]domain.MenuItem, error) {
	return m.list(ctx)
}

func (m *mockCatalogService) Popular(ctx context.Context) ([]domain.MenuItem, error) {
	return m.popular(ctx)
}

func (m *mockCatalogService) Get(ctx context.Context, itemID int64) (*domain.MenuItem, error) {
	return m.get(ctx, itemID)
}

func (m *mockCatalogService) Create(ctx context.Context, actor *domain.User, item *domain.MenuItem) error {
	return m.create(ctx, actor, item)
}

type mockCartService struct {
	add      func(ctx context.Context, user *domain.User, itemID int64) (string, error)
	remove   func(ctx context.Context, user *domain.User, itemID int64) error
	increase func(ctx context.Context, user *domain.User, itemID int64) error
	decrease func(ctx context.Context, user *domain.User, itemID int64) error
	view     func(ctx context.Context, user *domain.User) (*domain.CartView, error)
}

func (m *mockCartService) Add(ctx context.Context, user *domain.User, itemID int64) (string, error) {
	return m.add(ctx, user, itemID)
}

func (m *mockCartService) Remove(ctx context.Context, user *domain.User, itemID int64) error {
	return m.remove(ctx, user, itemID)
}

func (m *mockCartService) Increase(ctx context.Context, user *domain.User, itemID int64) error {
	return m.increase(ctx, user, itemID)
}

func (m *mockCartService) Decrease(ctx context.Context, user *domain.User, itemID int64) error {
	return m.decrease(ctx, user, itemID)
}

func (m *mockCartService) View(ctx context.Context, user *domain.User) (*domain.CartView, error) {
	return m.view(ctx, user)
}

type mockCheckoutService struct {
	stageSingle   func(ctx context.Context, user *domain.User, itemID int64, quantity int) (*domain.PendingOrder, error)
	stageFromCart func(ctx context.Context, user *domain.User) (*domain.PendingOrder, error)
	pending       func(ctx context.Context, user *domain.User) (*domain.PendingOrder, error)
	beginCheckout func(ctx context.Context, user *domain.User, selectedIDs []int64, quantities map[int64]int) (*domain.PendingOrder, error)
	resendCode    func(ctx context.Context, user *domain.User) error
	verify        func(ctx context.Context, user *domain.User, code string) (*domain.Order, error)
}

func (m *mockCheckoutService) StageSingle(ctx context.Context, user *domain.User, itemID int64, quantity int) (*domain.PendingOrder, error) {
	return m.stageSingle(ctx, user, itemID, quantity)
}

func (m *mockCheckoutService) StageFromCart(ctx context.Context, user *domain.User) (*domain.PendingOrder, error) {
	return m.stageFromCart(ctx, user)
}

func (m *mockCheckoutService) Pending(ctx context.Context, user *domain.User) (*domain.PendingOrder, error) {
	return m.pending(ctx, user)
}

func (m *mockCheckoutService) BeginCheckout(ctx context.Context, user *domain.User, selectedIDs []int64, quantities map[int64]int) (*domain.PendingOrder, error) {
	return m.beginCheckout(ctx, user, selectedIDs, quantities)
}

func (m *mockCheckoutService) ResendCode(ctx context.Context, user *domain.User) error {
	return m.resendCode(ctx, user)
}

func (m *mockCheckoutService) Verify(ctx context.Context, user *domain.User, code string) (*domain.Order, error) {
	return m.verify(ctx, user, code)
}

type mockOrderService struct {
	list               func(ctx context.Context, actor *domain.User) ([]*domain.Order, error)
	get                func(ctx context.Context, actor *domain.User, orderID uuid.UUID) (*domain.Order, error)
	requestDeliveryOTP func(ctx context.Context, actor *domain.User, orderID uuid.UUID) error
	verifyDeliveryOTP  func(ctx context.Context, actor *domain.User, orderID uuid.UUID, code string) (*domain.Order, error)
	updateStatus       func(ctx context.Context, actor *domain.User, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	deleteOrder        func(ctx context.Context, actor *domain.User, orderID uuid.UUID) error
	sendCancelOTP      func(ctx context.Context, actor *domain.User, orderID uuid.UUID) error
	verifyCancelOTP    func(ctx context.Context, actor *domain.User, orderID uuid.UUID, code string) (*domain.Order, error)
}

func (m *mockOrderService) List(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	return m.list(ctx, actor)
}

func (m *mockOrderService) Get(ctx context.Context, actor *domain.User, orderID uuid.UUID) (*domain.Order, error) {
	return m.get(ctx, actor, orderID)
}

func (m *mockOrderService) RequestDeliveryOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID) error {
	return m.requestDeliveryOTP(ctx, actor, orderID)
}

func (m *mockOrderService) VerifyDeliveryOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID, code string) (*domain.Order, error) {
	return m.verifyDeliveryOTP(ctx, actor, orderID, code)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, actor *domain.User, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	return m.updateStatus(ctx, actor, orderID, status)
}

func (m *mockOrderService) Delete(ctx context.Context, actor *domain.User, orderID uuid.UUID) error {
	return m.deleteOrder(ctx, actor, orderID)
}

func (m *mockOrderService) SendCancelOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID) error {
	return m.sendCancelOTP(ctx, actor, orderID)
}

func (m *mockOrderService) VerifyCancelOTP(ctx context.Context, actor *domain.User, orderID uuid.UUID, code string) (*domain.Order, error) {
	return m.verifyCancelOTP(ctx, actor, orderID, code)
}

type routerFixture struct {
	catalog  *mockCatalogService
	cart     *mockCartService
	checkout *mockCheckoutService
	orders   *mockOrderService
	router   http.Handler
	user     *domain.User
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		catalog:  &mockCatalogService{},
		cart:     &mockCartService{},
		checkout: &mockCheckoutService{},
		orders:   &mockOrderService{},
		user: &domain.User{
			ID:       7,
			Username: "ravi",
			Email:    "ravi@example.com",
			Phone:    "9876543210",
			Address:  "12 MG Road",
			Role:     domain.RoleCustomer,
		},
	}
	users := &mockUserRepo{byToken: map[string]*domain.User{"valid-token": f.user}}
	f.router = NewRouter(RouterConfig{
		Users:          users,
		Menu:           NewMenuHandler(f.catalog),
		Cart:           NewCartHandler(f.cart),
		Checkout:       NewCheckoutHandler(f.checkout),
		Orders:         NewOrdersHandler(f.orders),
		RequestTimeout: 5 * time.Second,
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer valid-token")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

func TestHealthNeedsNoAuth(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMenuList(t *testing.T) {
	f := newRouterFixture(t)
	f.catalog.list = func(context.Context) ([]domain.MenuItem, error) {
		return []domain.MenuItem{
			{ID: 1, Name: "Paneer Tikka", Price: decimal.RequireFromString("250.00"), Category: domain.CategoryDish},
		}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/menu/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []MenuItemDTO
	decodeBody(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Paneer Tikka", items[0].Name)
	assert.Equal(t, "250.00", items[0].Price)
}

func TestMenuGetInvalidID(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/menu/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMenuCreate(t *testing.T) {
	f := newRouterFixture(t)
	f.catalog.create = func(_ context.Context, actor *domain.User, item *domain.MenuItem) error {
		assert.Equal(t, int64(7), actor.ID)
		item.ID = 10
		return nil
	}

	rec := f.do(t, http.MethodPost, "/api/v1/menu/", CreateItemRequestDTO{
		Name: "Jalebi", Price: "40.00", Category: "Sweet",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var item MenuItemDTO
	decodeBody(t, rec, &item)
	assert.Equal(t, int64(10), item.ID)
	assert.Equal(t, "40.00", item.Price)
}

func TestMenuCreateBadPrice(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/menu/", CreateItemRequestDTO{
		Name: "Jalebi", Price: "forty", Category: "Sweet",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAddRespondsWithMessageAndCart(t *testing.T) {
	f := newRouterFixture(t)
	f.cart.add = func(_ context.Context, user *domain.User, itemID int64) (string, error) {
		assert.Equal(t, int64(3), itemID)
		return "Masala Dosa", nil
	}
	f.cart.view = func(context.Context, *domain.User) (*domain.CartView, error) {
		return &domain.CartView{
			Lines: []domain.CartViewLine{{
				ItemID: 3, Name: "Masala Dosa", Price: decimal.RequireFromString("120.00"),
				Category: domain.CategoryDish, Quantity: 1, Total: decimal.RequireFromString("120.00"),
			}},
			GrandTotal: decimal.RequireFromString("120.00"),
		}, nil
	}

	rec := f.do(t, http.MethodPost, "/api/v1/cart/items/3", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CartResponseDTO
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Masala Dosa successfully added to your cart", resp.Message)
	require.Len(t, resp.Cart.Lines, 1)
	assert.Equal(t, "120.00", resp.Cart.GrandTotal)
}

func TestCartAddUnknownItem(t *testing.T) {
	f := newRouterFixture(t)
	f.cart.add = func(context.Context, *domain.User, int64) (string, error) {
		return "", service.ErrNotFound
	}

	rec := f.do(t, http.MethodPost, "/api/v1/cart/items/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutBeginParsesQuantities(t *testing.T) {
	f := newRouterFixture(t)
	f.checkout.beginCheckout = func(_ context.Context, _ *domain.User, selectedIDs []int64, quantities map[int64]int) (*domain.PendingOrder, error) {
		assert.Equal(t, []int64{1}, selectedIDs)
		assert.Equal(t, map[int64]int{1: 3}, quantities)
		pending := &domain.PendingOrder{
			Lines: []domain.PendingLine{{
				ItemID: 1, Name: "Paneer Tikka", UnitPrice: decimal.RequireFromString("250.00"), Quantity: 3,
			}},
			CreatedAt:  time.Now(),
			Code:       "123456",
			CodeExpiry: time.Now().Add(10 * time.Minute),
		}
		pending.Recompute()
		return pending, nil
	}

	rec := f.do(t, http.MethodPost, "/api/v1/checkout/begin", BeginCheckoutRequestDTO{
		SelectedItems: []int64{1},
		Quantities:    map[string]string{"1": "3"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pending PendingOrderDTO
	decodeBody(t, rec, &pending)
	assert.True(t, pending.CodeSent)
	assert.Equal(t, "750.00", pending.GrandTotal)
}

func TestCheckoutBeginRejectsBadQuantities(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/checkout/begin", BeginCheckoutRequestDTO{
		SelectedItems: []int64{1},
		Quantities:    map[string]string{"1": "three"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/checkout/begin", BeginCheckoutRequestDTO{
		SelectedItems: []int64{1},
		Quantities:    map[string]string{"abc": "3"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutBeginNotifierFailure(t *testing.T) {
	f := newRouterFixture(t)
	f.checkout.beginCheckout = func(context.Context, *domain.User, []int64, map[int64]int) (*domain.PendingOrder, error) {
		return nil, service.ErrNotifierFailure
	}

	rec := f.do(t, http.MethodPost, "/api/v1/checkout/begin", BeginCheckoutRequestDTO{
		SelectedItems: []int64{1},
		Quantities:    map[string]string{"1": "1"},
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCheckoutVerifyCreatesOrder(t *testing.T) {
	f := newRouterFixture(t)
	orderID := uuid.New()
	confirmed := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	f.checkout.verify = func(_ context.Context, _ *domain.User, code string) (*domain.Order, error) {
		assert.Equal(t, "123456", code)
		return &domain.Order{
			ID:                   orderID,
			UserID:               7,
			Status:               domain.OrderStatusPending,
			ConfirmedAt:          confirmed,
			EtaMinutes:           45,
			EstimateDeliveryTime: confirmed.Add(45 * time.Minute),
			ActualDeliveryTime:   confirmed.Add(45 * time.Minute),
			GrandTotal:           decimal.RequireFromString("750.00"),
			Lines: []domain.OrderLine{
				{ID: 1, OrderID: orderID, Name: "Paneer Tikka", Price: decimal.RequireFromString("250.00"), Quantity: 3},
			},
		}, nil
	}

	rec := f.do(t, http.MethodPost, "/api/v1/checkout/verify", VerifyRequestDTO{Code: "123456"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var order OrderDTO
	decodeBody(t, rec, &order)
	assert.Equal(t, orderID.String(), order.ID)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, confirmed.Unix(), order.ConfirmedAt)
	assert.Equal(t, confirmed.Add(45*time.Minute).Unix(), order.EstimateDeliveryTime)
	assert.Equal(t, "750.00", order.GrandTotal)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "750.00", order.Lines[0].Total)
}

func TestCheckoutVerifyErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrExpired, http.StatusBadRequest},
		{service.ErrMismatch, http.StatusBadRequest},
		{service.ErrNoPendingOrder, http.StatusNotFound},
	}
	for _, tc := range cases {
		f := newRouterFixture(t)
		f.checkout.verify = func(context.Context, *domain.User, string) (*domain.Order, error) {
			return nil, tc.err
		}
		rec := f.do(t, http.MethodPost, "/api/v1/checkout/verify", VerifyRequestDTO{Code: "000000"})
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
	}
}

func TestOrdersGetInvalidUUID(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/orders/not-a-uuid/", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrdersDeliveryOTPTooLate(t *testing.T) {
	f := newRouterFixture(t)
	f.orders.requestDeliveryOTP = func(context.Context, *domain.User, uuid.UUID) error {
		return service.ErrTooLateToCancel
	}

	rec := f.do(t, http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/delivery-otp", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrdersVerifyDeliveryOTP(t *testing.T) {
	f := newRouterFixture(t)
	orderID := uuid.New()
	f.orders.verifyDeliveryOTP = func(_ context.Context, _ *domain.User, id uuid.UUID, code string) (*domain.Order, error) {
		assert.Equal(t, orderID, id)
		assert.Equal(t, "555666", code)
		zero := 0
		now := time.Now()
		return &domain.Order{
			ID:          orderID,
			UserID:      7,
			Status:      domain.OrderStatusCancelled,
			CancelledBy: "user (ravi)",
			CancelledAt: &now,
			LeftTime:    &zero,
			GrandTotal:  decimal.RequireFromString("250.00"),
		}, nil
	}

	rec := f.do(t, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/delivery-otp/verify", OTPRequestDTO{OTP: "555666"})
	require.Equal(t, http.StatusOK, rec.Code)

	var order OrderDTO
	decodeBody(t, rec, &order)
	assert.Equal(t, "cancelled", order.Status)
	assert.Equal(t, "user (ravi)", order.CancelledBy)
	require.NotNil(t, order.LeftTime)
	assert.Zero(t, *order.LeftTime)
}

func TestOrdersUpdateStatusForbidden(t *testing.T) {
	f := newRouterFixture(t)
	f.orders.updateStatus = func(context.Context, *domain.User, uuid.UUID, domain.OrderStatus) (*domain.Order, error) {
		return nil, service.ErrForbidden
	}

	rec := f.do(t, http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/status", UpdateStatusRequestDTO{Status: "on_the_way"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrdersDelete(t *testing.T) {
	f := newRouterFixture(t)
	called := false
	f.orders.deleteOrder = func(context.Context, *domain.User, uuid.UUID) error {
		called = true
		return nil
	}

	rec := f.do(t, http.MethodDelete, "/api/v1/orders/"+uuid.NewString()+"/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestOrdersCancelOTPMismatch(t *testing.T) {
	f := newRouterFixture(t)
	f.orders.verifyCancelOTP = func(context.Context, *domain.User, uuid.UUID, string) (*domain.Order, error) {
		return nil, service.ErrMismatch
	}

	rec := f.do(t, http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/cancel-otp/verify", OTPRequestDTO{OTP: "0000"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
