package service

import (
	"context"
	"log/slog"

	"github.com/mctasu/vending-machine-service/internal/entities"

	"github.com/shopspring/decimal"
)

// Gateway is the payment provider adapter. It translates an order into
// a provider intention and hands back the links the machine displays.
type Gateway interface {
	CreateIntention(ctx context.Context, orderID string, items []entities.LineItem, total decimal.Decimal) (string, error)
	CheckoutURL(clientSecret string) string
	QRURL(payURL string) string
}

type paymentService struct {
	logger  *slog.Logger
	gateway Gateway
}

func NewPaymentService(logger *slog.Logger, gateway Gateway) *paymentService {
	return &paymentService{
		logger:  logger.With(slog.String("service", "payment")),
		gateway: gateway,
	}
}

// CreatePayment builds a gateway intention for the order and returns a
// QR image URL encoding the hosted checkout link. A gateway failure
// leaves the order untouched; nothing is persisted here.
func (s *paymentService) CreatePayment(ctx context.Context, orderID string, items []entities.LineItem, total decimal.Decimal) (string, error) {
	clientSecret, err := s.gateway.CreateIntention(ctx, orderID, items, total)
	if err != nil {
		return "", err
	}

	payURL := s.gateway.CheckoutURL(clientSecret)
	qrURL := s.gateway.QRURL(payURL)

	s.logger.Debug("payment intention created", slog.String("order_id", orderID), slog.String("total", total.String()))
	return qrURL, nil
}
