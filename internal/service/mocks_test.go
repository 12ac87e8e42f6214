package service_test

import (
	"context"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/internal/events"
	"github.com/mctasu/vending-machine-service/pkg/trm"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockOrdersRepo struct{ mock.Mock }

func (m *mockOrdersRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrdersRepo) SaveItems(ctx context.Context, orderID string, items []entities.LineItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *mockOrdersRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrdersRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *mockOrdersRepo) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *mockOrdersRepo) MarkPaid(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishPaymentCompleted(ctx context.Context, event events.PaymentCompleted) error {
	return m.Called(ctx, event).Error(0)
}

type mockProductsRepo struct{ mock.Mock }

func (m *mockProductsRepo) SaveProduct(ctx context.Context, p entities.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductsRepo) GetProductByID(ctx context.Context, productID string) (entities.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockProductsRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entities.Product)
	return products, args.Error(1)
}

func (m *mockProductsRepo) UpdateProduct(ctx context.Context, p entities.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductsRepo) DeleteProduct(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(key string) ([]byte, bool) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1)
}

func (m *mockCache) Set(key string, value []byte) {
	m.Called(key, value)
}

func (m *mockCache) Delete(key string) {
	m.Called(key)
}

type mockUsersRepo struct{ mock.Mock }

func (m *mockUsersRepo) SaveUser(ctx context.Context, u entities.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsersRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUsersRepo) GetUserByID(ctx context.Context, userID string) (entities.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entities.User), args.Error(1)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateIntention(ctx context.Context, orderID string, items []entities.LineItem, total decimal.Decimal) (string, error) {
	args := m.Called(ctx, orderID, items, total)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) CheckoutURL(clientSecret string) string {
	return m.Called(clientSecret).String(0)
}

func (m *mockGateway) QRURL(payURL string) string {
	return m.Called(payURL).String(0)
}

// passthroughTx runs callbacks directly, no database underneath.
type passthroughTx struct{}

func (passthroughTx) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, nil, nil
}

func (passthroughTx) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}
