package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mctasu/vending-machine-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type productsRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewProductsRepo(db *sqlx.DB) *productsRepo {
	return &productsRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *productsRepo) SaveProduct(ctx context.Context, p entities.Product) error {
	query, args := r.qb.Insert("products").
		Columns("product_id", "name", "price", "quantity", "image_url", "machine_location").
		Values(p.ID, p.Name, p.Price, p.Quantity, nullString(p.ImageURL), nullString(p.MachineLocation)).
		MustSql()

	_, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return entities.ErrProductExists
	}
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *productsRepo) GetProductByID(ctx context.Context, productID string) (entities.Product, error) {
	query, args := r.qb.Select("product_id", "name", "price", "quantity", "image_url", "machine_location").
		From("products").
		Where(sq.Eq{"product_id": productID}).
		MustSql()

	var product Product
	err := r.db.GetContext(ctx, &product, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}

	return ProductToEntity(product), nil
}

func (r *productsRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	query, args := r.qb.Select("product_id", "name", "price", "quantity", "image_url", "machine_location").
		From("products").
		OrderBy("name").
		MustSql()

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	result := make([]entities.Product, 0, len(products))
	for _, p := range products {
		result = append(result, ProductToEntity(p))
	}
	return result, nil
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p entities.Product) error {
	query, args := r.qb.Update("products").
		Set("name", p.Name).
		Set("price", p.Price).
		Set("quantity", p.Quantity).
		Set("image_url", nullString(p.ImageURL)).
		Set("machine_location", nullString(p.MachineLocation)).
		Where(sq.Eq{"product_id": p.ID}).
		MustSql()

	res, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return entities.ErrProductExists
	}
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}

func (r *productsRepo) DeleteProduct(ctx context.Context, productID string) error {
	query, args := r.qb.Delete("products").
		Where(sq.Eq{"product_id": productID}).
		MustSql()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}
