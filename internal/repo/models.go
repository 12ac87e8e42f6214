package repo

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mctasu/vending-machine-service/internal/entities"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID       string          `db:"order_id"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	OrderStatus   string          `db:"order_status"`
	PaymentStatus string          `db:"payment_status"`
	CreatedAt     time.Time       `db:"created_at"`
}

type OrderItem struct {
	ItemID          string          `db:"item_id"`
	OrderID         string          `db:"order_id"`
	Name            string          `db:"name"`
	Price           decimal.Decimal `db:"price"`
	Quantity        int             `db:"quantity"`
	ImageURL        sql.NullString  `db:"image_url"`
	MachineLocation sql.NullString  `db:"machine_location"`
}

type Product struct {
	ProductID       string          `db:"product_id"`
	Name            string          `db:"name"`
	Price           decimal.Decimal `db:"price"`
	Quantity        int             `db:"quantity"`
	ImageURL        sql.NullString  `db:"image_url"`
	MachineLocation sql.NullString  `db:"machine_location"`
}

type User struct {
	UserID       string    `db:"user_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
}

func ItemToEntity(i OrderItem) entities.LineItem {
	return entities.LineItem{
		Name:            i.Name,
		Price:           i.Price,
		Quantity:        i.Quantity,
		ImageURL:        nullStringToString(i.ImageURL),
		MachineLocation: nullStringToString(i.MachineLocation),
	}
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	order := entities.Order{
		ID:            o.OrderID,
		TotalPrice:    o.TotalPrice,
		OrderStatus:   entities.OrderStatus(o.OrderStatus),
		PaymentStatus: entities.PaymentStatus(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
	}

	if len(items) > 0 {
		order.Items = make([]entities.LineItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:              p.ProductID,
		Name:            p.Name,
		Price:           p.Price,
		Quantity:        p.Quantity,
		ImageURL:        nullStringToString(p.ImageURL),
		MachineLocation: nullStringToString(p.MachineLocation),
	}
}

func UserToEntity(u User) entities.User {
	return entities.User{
		ID:           u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         entities.Role(u.Role),
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// 23505 is unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
