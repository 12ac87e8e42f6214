package handler

import (
	"time"

	"github.com/mctasu/vending-machine-service/internal/entities"

	"github.com/shopspring/decimal"
)

// LineItem is a product snapshot inside an order
type LineItem struct {
	Name            string          `json:"name" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Quantity        int             `json:"quantity" validate:"required,gt=0"`
	ImageURL        string          `json:"image_url,omitempty"`
	MachineLocation string          `json:"machine_location,omitempty"`
}

// Order represents an order with its line item snapshots
type Order struct {
	ID            string          `json:"id"`
	Products      []LineItem      `json:"products"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OrderStatus   string          `json:"order_status"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CreateOrderRequest struct {
	Products []LineItem `json:"products" validate:"required,min=1,dive"`
}

type OrderStatusResponse struct {
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
}

type CreatePaymentRequest struct {
	OrderID  string          `json:"order_id" validate:"required"`
	Products []LineItem      `json:"products" validate:"required,min=1,dive"`
	Total    decimal.Decimal `json:"total" validate:"required"`
}

type CreatePaymentResponse struct {
	QRURL string `json:"qr_url"`
}

// Product is a catalog entry
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	ImageURL        string          `json:"image_url,omitempty"`
	MachineLocation string          `json:"machine_location,omitempty"`
}

type ProductRequest struct {
	Name            string          `json:"name" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Quantity        int             `json:"quantity" validate:"gte=0"`
	ImageURL        string          `json:"image_url,omitempty" validate:"omitempty,url"`
	MachineLocation string          `json:"machine_location,omitempty"`
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func LineItemJSONToEntity(it LineItem) entities.LineItem {
	return entities.LineItem{
		Name:            it.Name,
		Price:           it.Price,
		Quantity:        it.Quantity,
		ImageURL:        it.ImageURL,
		MachineLocation: it.MachineLocation,
	}
}

func LineItemsJSONToEntity(items []LineItem) []entities.LineItem {
	result := make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		result = append(result, LineItemJSONToEntity(it))
	}
	return result
}

func LineItemEntityToJSON(it entities.LineItem) LineItem {
	return LineItem{
		Name:            it.Name,
		Price:           it.Price,
		Quantity:        it.Quantity,
		ImageURL:        it.ImageURL,
		MachineLocation: it.MachineLocation,
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, LineItemEntityToJSON(it))
	}

	return Order{
		ID:            o.ID,
		Products:      items,
		TotalPrice:    o.TotalPrice,
		OrderStatus:   string(o.OrderStatus),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
	}
}

func ProductEntityToJSON(p entities.Product) Product {
	return Product{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Quantity:        p.Quantity,
		ImageURL:        p.ImageURL,
		MachineLocation: p.MachineLocation,
	}
}

func ProductRequestToEntity(id string, req ProductRequest) entities.Product {
	return entities.Product{
		ID:              id,
		Name:            req.Name,
		Price:           req.Price,
		Quantity:        req.Quantity,
		ImageURL:        req.ImageURL,
		MachineLocation: req.MachineLocation,
	}
}

func UserEntityToJSON(u entities.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
