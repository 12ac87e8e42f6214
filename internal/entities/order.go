package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderDone      OrderStatus = "Done"
	OrderCancelled OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// LineItem is a snapshot of a catalog product taken at order creation.
// Orders keep their own copy, so later catalog edits never change them.
type LineItem struct {
	Name            string
	Price           decimal.Decimal
	Quantity        int
	ImageURL        string
	MachineLocation string
}

type Order struct {
	ID            string
	Items         []LineItem
	TotalPrice    decimal.Decimal
	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
}

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderAlreadyPaid = errors.New("order already paid")
	ErrInvalidLineItem  = errors.New("invalid line item")
)

// TotalOf computes an order total as sum(price * quantity).
// The result is stored on the order and never recomputed.
func TotalOf(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
