package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type PaymentCreator interface {
	CreatePayment(ctx context.Context, orderID string, items []entities.LineItem, total decimal.Decimal) (string, error)
}

type PaymentFinisher interface {
	FinishPayment(ctx context.Context, orderID string) error
}

type PaymentsHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	payments PaymentCreator
	orders   PaymentFinisher
	detail   detailMode
}

func NewPaymentsHandler(logger *slog.Logger, env string, payments PaymentCreator, orders PaymentFinisher) *PaymentsHandler {
	return &PaymentsHandler{
		logger:   logger.With(slog.String("handler", "payments")),
		validate: validator.New(),
		payments: payments,
		orders:   orders,
		detail:   detailModeFor(env),
	}
}

func (h *PaymentsHandler) Init(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/create-payment", h.CreatePayment)
		r.Get("/finish-payment/{order_id}", h.FinishPayment)
	})
}

// CreatePayment builds a gateway payment intention and returns a QR link.
// @Summary      Create payment
// @Description  Submits a payment intention to the gateway and returns a scannable QR URL for the hosted checkout
// @Tags         payments
// @Accept       json
// @Param        request  body  CreatePaymentRequest  true  "Order id, line items and total"
// @Success      200  {object}  CreatePaymentResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /payments/create-payment [post]
func (h *PaymentsHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePaymentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	qrURL, err := h.payments.CreatePayment(ctx, req.OrderID, LineItemsJSONToEntity(req.Products), req.Total)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create payment", slog.Any("error", err), slog.String("order_id", req.OrderID))
		h.detail.writeServerError(w, "failed to create payment intention", err)
		return
	}

	utils.WriteJSON(w, CreatePaymentResponse{QRURL: qrURL}, http.StatusOK)
}

// FinishPayment is the gateway redirect target; it responds with HTML.
// Unknown orders and repeated callbacks get the terminal invalid page.
// @Summary      Finish payment (gateway redirect)
// @Tags         payments
// @Produce      html
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {string}  string  "payment success page"
// @Failure      404  {string}  string  "invalid request page"
// @Router       /payments/finish-payment/{order_id} [get]
func (h *PaymentsHandler) FinishPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	err := h.orders.FinishPayment(ctx, orderID)
	switch {
	case err == nil:
		utils.WriteHTML(w, paymentSuccessPage, http.StatusOK)
	case errors.Is(err, entities.ErrOrderNotFound), errors.Is(err, entities.ErrOrderAlreadyPaid):
		utils.WriteHTML(w, invalidPage(orderID), http.StatusNotFound)
	default:
		h.logger.ErrorContext(ctx, "failed to finish payment", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteHTML(w, invalidPage(orderID), http.StatusInternalServerError)
	}
}

func invalidPage(orderID string) string {
	return fmt.Sprintf(invalidRequestPage, html.EscapeString(orderID))
}
