package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ordersRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewOrdersRepo(db *sqlx.DB) *ordersRepo {
	return &ordersRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ordersRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("order_id", "total_price", "order_status", "payment_status", "created_at").
		Values(o.ID, o.TotalPrice, o.OrderStatus, o.PaymentStatus, o.CreatedAt).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *ordersRepo) SaveItems(ctx context.Context, orderID string, items []entities.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("item_id", "order_id", "name", "price", "quantity", "image_url", "machine_location")

	for _, it := range items {
		q = q.Values(
			uuid.NewString(),
			orderID,
			it.Name,
			it.Price,
			it.Quantity,
			nullString(it.ImageURL),
			nullString(it.MachineLocation),
		)
	}

	query, args := q.MustSql()
	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

func (r *ordersRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select("order_id", "total_price", "order_status", "payment_status", "created_at").
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsFor(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, items), nil
}

func (r *ordersRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	query, args := r.qb.Select("order_id", "total_price", "order_status", "payment_status", "created_at").
		From("orders").
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}

	query, args = r.qb.Select("item_id", "order_id", "name", "price", "quantity", "image_url", "machine_location").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}
	itemsMap := make(map[string][]OrderItem, len(ids))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, itemsMap[o.OrderID]))
	}
	return result, nil
}

func (r *ordersRepo) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) error {
	query, args := r.qb.Update("orders").
		Set("order_status", status).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

// MarkPaid performs the Pending->Paid transition as a single
// compare-and-set so concurrent duplicate callbacks cannot both win.
// Exactly one caller gets nil; later ones get ErrOrderAlreadyPaid.
func (r *ordersRepo) MarkPaid(ctx context.Context, orderID string) error {
	query, args := r.qb.Update("orders").
		Set("payment_status", entities.PaymentPaid).
		Where(sq.Eq{"order_id": orderID}).
		Where(sq.NotEq{"payment_status": entities.PaymentPaid}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// CAS missed: either the order does not exist or it is already Paid.
	query, args = r.qb.Select("payment_status").
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var status string
	err = r.getContext(ctx, &status, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check payment status: %w", err)
	}
	return entities.ErrOrderAlreadyPaid
}

func (r *ordersRepo) itemsFor(ctx context.Context, orderID string) ([]OrderItem, error) {
	query, args := r.qb.Select("item_id", "order_id", "name", "price", "quantity", "image_url", "machine_location").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	return items, nil
}

func (r *ordersRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *ordersRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *ordersRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
