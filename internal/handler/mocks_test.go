package handler_test

import (
	"context"
	"net/http"

	"github.com/mctasu/vending-machine-service/internal/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// noAuth stands in for the admin middleware on routes under test.
func noAuth(next http.Handler) http.Handler { return next }

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) CreateOrder(ctx context.Context, items []entities.LineItem) (entities.Order, error) {
	args := m.Called(ctx, items)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]entities.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *mockOrderService) MarkDone(ctx context.Context, orderID string) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

type mockPaymentCreator struct{ mock.Mock }

func (m *mockPaymentCreator) CreatePayment(ctx context.Context, orderID string, items []entities.LineItem, total decimal.Decimal) (string, error) {
	args := m.Called(ctx, orderID, items, total)
	return args.String(0), args.Error(1)
}

type mockPaymentFinisher struct{ mock.Mock }

func (m *mockPaymentFinisher) FinishPayment(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockCatalogService) GetProductByID(ctx context.Context, productID string) (entities.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockCatalogService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entities.Product)
	return products, args.Error(1)
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) SignUp(ctx context.Context, name, email, password string) (entities.User, string, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(entities.User), args.String(1), args.Error(2)
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (entities.User, string, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(entities.User), args.String(1), args.Error(2)
}
