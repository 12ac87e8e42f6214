package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, items []entities.LineItem) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	MarkDone(ctx context.Context, orderID string) (entities.Order, error)
}

type OrdersHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	admin    func(http.Handler) http.Handler
	detail   detailMode
}

func NewOrdersHandler(logger *slog.Logger, env string, svc OrderService, admin func(http.Handler) http.Handler) *OrdersHandler {
	return &OrdersHandler{
		logger:   logger.With(slog.String("handler", "orders")),
		validate: validator.New(),
		svc:      svc,
		admin:    admin,
		detail:   detailModeFor(env),
	}
}

func (h *OrdersHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/check-order-status/{order_id}", h.CheckOrderStatus)
		r.With(h.admin).Get("/mark-as-done/{order_id}", h.MarkAsDone)
		r.Get("/{order_id}", h.GetOrderByID)
	})
}

// CreateOrder creates an order from line item snapshots.
// @Summary      Create order
// @Description  Validates the line items, computes the total price and stores the order with Pending statuses
// @Tags         orders
// @Accept       json
// @Param        request  body  CreateOrderRequest  true  "Line items"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders [post]
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.CreateOrder(ctx, LineItemsJSONToEntity(req.Products))
	if errors.Is(err, entities.ErrInvalidLineItem) {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// ListOrders returns all orders, newest first.
// @Summary      List orders
// @Tags         orders
// @Success      200  {array}  Order
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders [get]
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.svc.ListOrders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// GetOrderByID returns a single order.
// @Summary      Get order
// @Tags         orders
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders/{order_id} [get]
func (h *OrdersHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	order, err := h.svc.GetOrderByID(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "no order found with that ID", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.String("order_id", orderID))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CheckOrderStatus reports the order and payment status pair.
// @Summary      Check order status
// @Tags         orders
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  OrderStatusResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /orders/check-order-status/{order_id} [get]
func (h *OrdersHandler) CheckOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	order, err := h.svc.GetOrderByID(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "no order found with that ID", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check order status", slog.Any("error", err), slog.String("order_id", orderID))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, OrderStatusResponse{
		OrderStatus:   string(order.OrderStatus),
		PaymentStatus: string(order.PaymentStatus),
	}, http.StatusOK)
}

// MarkAsDone flips the order status to Done. Safe to repeat.
// @Summary      Mark order as done
// @Tags         orders
// @Security     BearerAuth
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /orders/mark-as-done/{order_id} [get]
func (h *OrdersHandler) MarkAsDone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	order, err := h.svc.MarkDone(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "no order found with that ID", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to mark order as done", slog.Any("error", err), slog.String("order_id", orderID))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}
