package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/internal/events"
	"github.com/mctasu/vending-machine-service/pkg/trm"
	"github.com/mctasu/vending-machine-service/pkg/utils"

	"github.com/google/uuid"
)

type OrdersRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveItems(ctx context.Context, orderID string, items []entities.LineItem) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) error

	// MarkPaid is a compare-and-set Pending->Paid; exactly one caller
	// per order gets nil, the rest get ErrOrderAlreadyPaid.
	MarkPaid(ctx context.Context, orderID string) error
}

type EventPublisher interface {
	PublishPaymentCompleted(ctx context.Context, event events.PaymentCompleted) error
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrdersRepo
	publisher EventPublisher
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrdersRepo, publisher EventPublisher) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		publisher: publisher,
	}
}

// CreateOrder validates the line items, computes the total once and
// persists the order with its item snapshots in a single transaction.
func (s *orderService) CreateOrder(ctx context.Context, items []entities.LineItem) (entities.Order, error) {
	if len(items) == 0 {
		return entities.Order{}, fmt.Errorf("%w: order has no items", entities.ErrInvalidLineItem)
	}
	for i, it := range items {
		if it.Name == "" {
			return entities.Order{}, fmt.Errorf("%w: item %d has no name", entities.ErrInvalidLineItem, i)
		}
		if !it.Price.IsPositive() {
			return entities.Order{}, fmt.Errorf("%w: item %d has non-positive price", entities.ErrInvalidLineItem, i)
		}
		if it.Quantity <= 0 {
			return entities.Order{}, fmt.Errorf("%w: item %d has non-positive quantity", entities.ErrInvalidLineItem, i)
		}
	}

	order := entities.Order{
		ID:            uuid.NewString(),
		Items:         items,
		TotalPrice:    entities.TotalOf(items),
		OrderStatus:   entities.OrderPending,
		PaymentStatus: entities.PaymentPending,
		CreatedAt:     time.Now().UTC(),
	}

	fn := func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.repo.SaveOrder(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}
			return nil
		})
	}

	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
	if err := utils.Retry(cfg, fn); err != nil {
		return entities.Order{}, err
	}

	s.logger.Debug("order created", "order_id", order.ID, "total", order.TotalPrice.String())
	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
	if err := utils.Retry(cfg, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]entities.Order, error) {
	return s.repo.ListOrders(ctx)
}

// MarkDone sets the order status to Done unconditionally, so repeating
// the call is harmless. The admin uses it once the machine dispensed.
func (s *orderService) MarkDone(ctx context.Context, orderID string) (entities.Order, error) {
	if err := s.repo.UpdateOrderStatus(ctx, orderID, entities.OrderDone); err != nil {
		return entities.Order{}, err
	}
	return s.repo.GetOrderByID(ctx, orderID)
}

// FinishPayment handles the gateway redirect. The Pending->Paid
// transition happens at the store as a compare-and-set, so duplicate
// or concurrent callbacks mark the order paid at most once and the
// completion event fires at most once.
func (s *orderService) FinishPayment(ctx context.Context, orderID string) error {
	if err := s.repo.MarkPaid(ctx, orderID); err != nil {
		return err
	}
	paymentsCompleted.Inc()

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		s.logger.ErrorContext(ctx, "paid order vanished before event publish",
			slog.String("order_id", orderID), slog.Any("error", err))
		return nil
	}

	event := events.PaymentCompleted{
		OrderID:    order.ID,
		Amount:     order.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishPaymentCompleted(ctx, event); err != nil {
		// The payment itself succeeded; losing the event must not
		// fail the webhook response.
		s.logger.ErrorContext(ctx, "failed to publish payment completed event",
			slog.String("order_id", orderID), slog.Any("error", err))
	}

	s.logger.Info("payment finished", slog.String("order_id", orderID))
	return nil
}
