package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/notifier"
	"github.com/arun-kumar2004/TastyCart/internal/otp"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
	"github.com/arun-kumar2004/TastyCart/internal/session"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type mockMenuRepo struct {
	items map[int64]domain.MenuItem
	err   error
}

func newMockMenuRepo(items ...domain.MenuItem) *mockMenuRepo {
	m := &mockMenuRepo{items: make(map[int64]domain.MenuItem)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *mockMenuRepo) ListItems(context.Context) ([]domain.MenuItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	items := make([]domain.MenuItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	return items, nil
}

func (m *mockMenuRepo) ListPopularItems(ctx context.Context) ([]domain.MenuItem, error) {
	all, err := m.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	var popular []domain.MenuItem
	for _, item := range all {
		if item.Popular {
			popular = append(popular, item)
		}
	}
	return popular, nil
}

func (m *mockMenuRepo) GetItem(_ context.Context, itemID int64) (*domain.MenuItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[itemID]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return &item, nil
}

func (m *mockMenuRepo) CreateItem(_ context.Context, item *domain.MenuItem) error {
	if m.err != nil {
		return m.err
	}
	item.ID = int64(len(m.items) + 1)
	m.items[item.ID] = *item
	return nil
}

type mockCartRepo struct {
	m      sync.Mutex
	lines  []domain.CartLine
	nextID int64
	err    error
}

func (m *mockCartRepo) ListLines(_ context.Context, userID int64) ([]domain.CartLine, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.CartLine
	for _, line := range m.lines {
		if line.UserID == userID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (m *mockCartRepo) GetLine(_ context.Context, userID, itemID int64) (*domain.CartLine, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, line := range m.lines {
		if line.UserID == userID && line.ItemID == itemID {
			l := line
			return &l, nil
		}
	}
	return nil, repository.ErrCartLineNotFound
}

func (m *mockCartRepo) UpsertLine(_ context.Context, userID, itemID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.lines {
		if m.lines[i].UserID == userID && m.lines[i].ItemID == itemID {
			m.lines[i].Quantity++
			return nil
		}
	}
	m.nextID++
	m.lines = append(m.lines, domain.CartLine{ID: m.nextID, UserID: userID, ItemID: itemID, Quantity: 1})
	return nil
}

func (m *mockCartRepo) SetQuantity(_ context.Context, userID, itemID int64, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.lines {
		if m.lines[i].UserID == userID && m.lines[i].ItemID == itemID {
			m.lines[i].Quantity = quantity
			return nil
		}
	}
	return repository.ErrCartLineNotFound
}

func (m *mockCartRepo) DeleteLine(_ context.Context, userID, itemID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, line := range m.lines {
		if line.UserID == userID && line.ItemID == itemID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockCartRepo) DeleteLinesByItemIDs(ctx context.Context, userID int64, itemIDs []int64) error {
	if m.err != nil {
		return m.err
	}
	for _, id := range itemIDs {
		if err := m.DeleteLine(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

type mockOrderRepo struct {
	m      sync.Mutex
	orders map[uuid.UUID]*domain.Order
	err    error
}

func newMockOrderRepo(orders ...*domain.Order) *mockOrderRepo {
	m := &mockOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
	for _, order := range orders {
		m.orders[order.ID] = order
	}
	return m
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range order.Lines {
		order.Lines[i].ID = int64(i + 1)
	}
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) GetOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) ListOrdersByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListAllOrders(context.Context) ([]*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Order
	for _, order := range m.orders {
		out = append(out, order)
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

type mockUserRepo struct {
	users map[int64]*domain.User
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[int64]*domain.User)}
	for _, user := range users {
		m.users[user.ID] = user
	}
	return m
}

func (m *mockUserRepo) GetUserByToken(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) GetUser(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

type mockSessionStore struct {
	m       sync.Mutex
	pending map[int64]*domain.PendingOrder
	err     error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{pending: make(map[int64]*domain.PendingOrder)}
}

func (m *mockSessionStore) Get(_ context.Context, userID int64) (*domain.PendingOrder, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	pending, ok := m.pending[userID]
	if !ok {
		return nil, session.ErrNoPendingOrder
	}
	copied := *pending
	return &copied, nil
}

func (m *mockSessionStore) Put(_ context.Context, userID int64, pending *domain.PendingOrder) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	copied := *pending
	m.pending[userID] = &copied
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, userID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.pending, userID)
	return nil
}

type mockOTPStore struct {
	m     sync.Mutex
	codes map[string]string
	err   error
}

func newMockOTPStore() *mockOTPStore {
	return &mockOTPStore{codes: make(map[string]string)}
}

func (m *mockOTPStore) Set(_ context.Context, orderID, code string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.codes[orderID] = code
	return nil
}

func (m *mockOTPStore) Get(_ context.Context, orderID string) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", m.err
	}
	code, ok := m.codes[orderID]
	if !ok {
		return "", otp.ErrCodeNotFound
	}
	return code, nil
}

func (m *mockOTPStore) Delete(_ context.Context, orderID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.codes, orderID)
	return nil
}

type mockNotifier struct {
	m    sync.Mutex
	sent []notifier.Message
	err  error
}

func (m *mockNotifier) Send(_ context.Context, msg notifier.Message) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockNotifier) sentCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.sent)
}
