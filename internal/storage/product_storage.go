package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional stock decrement
	// matches no row although the product exists.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductStorage defines product catalog access plus the transactional stock
// primitives used by the order workflow.
type ProductStorage interface {
	List(ctx context.Context) ([]*models.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error

	GetTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Product, error)
	ReserveStockTx(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error
	ReleaseStockTx(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error
}

// PostgresProductStorage implements ProductStorage for PostgreSQL.
type PostgresProductStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresProductStorage creates a new PostgresProductStorage.
func NewPostgresProductStorage(pool *pgxpool.Pool) *PostgresProductStorage {
	return &PostgresProductStorage{pool: pool}
}

// List returns all products with joined provider, category and brand names.
func (s *PostgresProductStorage) List(ctx context.Context) ([]*models.ProductResponse, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.price, p.stock,
		       p.provider_id, prov.name,
		       p.category_id, cat.name,
		       p.brand_id, b.name,
		       p.cost, p.margin, p.status, p.allow_discount
		FROM products p
		LEFT JOIN providers prov ON p.provider_id = prov.id
		LEFT JOIN categories cat ON p.category_id = cat.id
		LEFT JOIN brands b ON p.brand_id = b.id
		ORDER BY p.id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.ProductResponse
	for rows.Next() {
		var (
			resp         models.ProductResponse
			price, stock decimal.Decimal
			cost, margin decimal.Decimal
		)
		err := rows.Scan(
			&resp.ID, &resp.Name, &resp.SKU, &price, &stock,
			&resp.ProviderID, &resp.ProviderName,
			&resp.CategoryID, &resp.CategoryName,
			&resp.BrandID, &resp.BrandName,
			&cost, &margin, &resp.Status, &resp.AllowDiscount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		resp.Price, _ = price.Float64()
		resp.Stock, _ = stock.Float64()
		resp.Cost, _ = cost.Float64()
		resp.Margin, _ = margin.Float64()
		products = append(products, &resp)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return products, nil
}

// GetByID returns a product by id.
func (s *PostgresProductStorage) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return scanProduct(s.pool.QueryRow(ctx, productSelect+` WHERE id = $1`, id))
}

// GetTx returns a product by id within the given transaction.
func (s *PostgresProductStorage) GetTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Product, error) {
	return scanProduct(tx.QueryRow(ctx, productSelect+` WHERE id = $1`, id))
}

// Create inserts a new product.
func (s *PostgresProductStorage) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, sku, price, stock, provider_id, category_id, brand_id,
		                      cost, margin, status, allow_discount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		product.Name, product.SKU, product.Price, product.Stock,
		product.ProviderID, product.CategoryID, product.BrandID,
		product.Cost, product.Margin, product.Status, product.AllowDiscount,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update replaces all mutable columns of a product.
func (s *PostgresProductStorage) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, sku = $2, price = $3, stock = $4, provider_id = $5,
		    category_id = $6, brand_id = $7, cost = $8, margin = $9,
		    status = $10, allow_discount = $11, updated_at = NOW()
		WHERE id = $12
	`

	result, err := s.pool.Exec(ctx, query,
		product.Name, product.SKU, product.Price, product.Stock,
		product.ProviderID, product.CategoryID, product.BrandID,
		product.Cost, product.Margin, product.Status, product.AllowDiscount,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product. Historical order lines keep referencing the id.
func (s *PostgresProductStorage) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// ReserveStockTx decrements stock by quantity. The availability check and the
// decrement are a single statement, so concurrent reservations on the same
// product cannot drive stock negative regardless of isolation level.
func (s *PostgresProductStorage) ReserveStockTx(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error {
	query := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing product from an exhausted one.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check product existence: %w", err)
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}

	return nil
}

// ReleaseStockTx adds quantity back to stock, reversing a reservation.
func (s *PostgresProductStorage) ReleaseStockTx(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

const productSelect = `
	SELECT id, name, sku, price, stock, provider_id, category_id, brand_id,
	       cost, margin, status, allow_discount, created_at, updated_at
	FROM products`

// scanProduct reads one product row.
func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.SKU,
		&product.Price,
		&product.Stock,
		&product.ProviderID,
		&product.CategoryID,
		&product.BrandID,
		&product.Cost,
		&product.Margin,
		&product.Status,
		&product.AllowDiscount,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	return product, nil
}
