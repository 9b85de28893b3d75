package storage

import (
	"context"
	"fmt"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StatsStorage serves read-only sales aggregations over a trailing window of
// days. It never touches order or stock state.
type StatsStorage interface {
	TopProducts(ctx context.Context, days int) ([]*models.TopProduct, error)
	TopProviders(ctx context.Context, days int) ([]*models.TopProvider, error)
	TopClients(ctx context.Context, days int) ([]*models.TopClient, error)
	ClientProducts(ctx context.Context, clientID int64, days int) ([]*models.ClientProduct, error)
}

// PostgresStatsStorage implements StatsStorage for PostgreSQL.
type PostgresStatsStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStatsStorage creates a new PostgresStatsStorage.
func NewPostgresStatsStorage(pool *pgxpool.Pool) *PostgresStatsStorage {
	return &PostgresStatsStorage{pool: pool}
}

// TopProducts returns the best-selling products of the window by quantity.
func (s *PostgresStatsStorage) TopProducts(ctx context.Context, days int) ([]*models.TopProduct, error) {
	query := `
		SELECT p.id, p.name, p.sku,
		       SUM(i.quantity), SUM(i.quantity * i.unit_price),
		       COUNT(DISTINCT o.id)
		FROM products p
		INNER JOIN order_items i ON p.id = i.product_id
		INNER JOIN orders o ON i.order_id = o.id
		WHERE o.created_at >= NOW() - make_interval(days => $1)
		GROUP BY p.id, p.name, p.sku
		ORDER BY SUM(i.quantity) DESC
	`

	rows, err := s.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var result []*models.TopProduct
	for rows.Next() {
		var (
			item              models.TopProduct
			quantity, revenue decimal.Decimal
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.SKU, &quantity, &revenue, &item.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		item.TotalQuantity, _ = quantity.Float64()
		item.TotalRevenue, _ = revenue.Float64()
		result = append(result, &item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return result, nil
}

// TopProviders returns providers ranked by revenue of their sold products.
func (s *PostgresStatsStorage) TopProviders(ctx context.Context, days int) ([]*models.TopProvider, error) {
	query := `
		SELECT prov.id, prov.name, prov.contact, prov.phone,
		       COUNT(DISTINCT p.id),
		       SUM(i.quantity * i.unit_price), SUM(i.quantity)
		FROM providers prov
		INNER JOIN products p ON prov.id = p.provider_id
		INNER JOIN order_items i ON p.id = i.product_id
		INNER JOIN orders o ON i.order_id = o.id
		WHERE o.created_at >= NOW() - make_interval(days => $1)
		GROUP BY prov.id, prov.name, prov.contact, prov.phone
		ORDER BY SUM(i.quantity * i.unit_price) DESC
	`

	rows, err := s.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query top providers: %w", err)
	}
	defer rows.Close()

	var result []*models.TopProvider
	for rows.Next() {
		var (
			item          models.TopProvider
			amount, items decimal.Decimal
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Contact, &item.Phone, &item.ProductCount, &amount, &items); err != nil {
			return nil, fmt.Errorf("failed to scan top provider: %w", err)
		}
		item.TotalAmount, _ = amount.Float64()
		item.TotalItems, _ = items.Float64()
		result = append(result, &item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return result, nil
}

// TopClients returns clients ranked by total order amount.
func (s *PostgresStatsStorage) TopClients(ctx context.Context, days int) ([]*models.TopClient, error) {
	query := `
		SELECT c.id, c.name, c.phone, c.email,
		       COUNT(DISTINCT o.id), SUM(o.total), SUM(i.quantity)
		FROM clients c
		INNER JOIN orders o ON c.id = o.client_id
		INNER JOIN order_items i ON o.id = i.order_id
		WHERE o.created_at >= NOW() - make_interval(days => $1)
		GROUP BY c.id, c.name, c.phone, c.email
		ORDER BY SUM(o.total) DESC
	`

	rows, err := s.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query top clients: %w", err)
	}
	defer rows.Close()

	var result []*models.TopClient
	for rows.Next() {
		var (
			item          models.TopClient
			amount, items decimal.Decimal
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Phone, &item.Email, &item.OrderCount, &amount, &items); err != nil {
			return nil, fmt.Errorf("failed to scan top client: %w", err)
		}
		item.TotalAmount, _ = amount.Float64()
		item.TotalItems, _ = items.Float64()
		result = append(result, &item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return result, nil
}

// ClientProducts returns the products a client bought in the window.
func (s *PostgresStatsStorage) ClientProducts(ctx context.Context, clientID int64, days int) ([]*models.ClientProduct, error) {
	query := `
		SELECT p.id, p.name, p.sku,
		       SUM(i.quantity), SUM(i.quantity * i.unit_price)
		FROM products p
		INNER JOIN order_items i ON p.id = i.product_id
		INNER JOIN orders o ON i.order_id = o.id
		WHERE o.client_id = $1
		  AND o.created_at >= NOW() - make_interval(days => $2)
		GROUP BY p.id, p.name, p.sku
		ORDER BY SUM(i.quantity) DESC
	`

	rows, err := s.pool.Query(ctx, query, clientID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query client products: %w", err)
	}
	defer rows.Close()

	var result []*models.ClientProduct
	for rows.Next() {
		var (
			item            models.ClientProduct
			quantity, spent decimal.Decimal
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.SKU, &quantity, &spent); err != nil {
			return nil, fmt.Errorf("failed to scan client product: %w", err)
		}
		item.TotalQuantity, _ = quantity.Float64()
		item.TotalSpent, _ = spent.Float64()
		result = append(result, &item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return result, nil
}
