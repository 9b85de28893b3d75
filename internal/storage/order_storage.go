package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderStorage defines order persistence. The ...Tx methods are the building
// blocks of the order transaction and run inside the caller's transaction;
// List and GetByID are the read path.
type OrderStorage interface {
	CreateHeaderTx(ctx context.Context, tx pgx.Tx, order *models.Order) error
	UpdateHeaderTx(ctx context.Context, tx pgx.Tx, order *models.Order) error
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.OrderStatus) error
	GetHeaderTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Order, error)
	InsertItemTx(ctx context.Context, tx pgx.Tx, item *models.OrderItem) error
	ItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]*models.OrderItem, error)
	DeleteItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) error

	List(ctx context.Context, filter models.OrderFilter) ([]*models.OrderSummary, error)
	GetByID(ctx context.Context, id int64) (*models.OrderDetail, error)
}

// PostgresOrderStorage implements OrderStorage for PostgreSQL.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage creates a new PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

// CreateHeaderTx inserts the order header and fills ID and CreatedAt.
func (s *PostgresOrderStorage) CreateHeaderTx(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	query := `
		INSERT INTO orders (order_type, client_id, provider_id, courier_id, created_at,
		                    delivery_date, total, amount_due, balance, discount, status,
		                    delivery_type, notes)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		order.OrderType,
		order.ClientID,
		order.ProviderID,
		order.CourierID,
		order.DeliveryDate,
		order.Total,
		order.AmountDue,
		order.Balance,
		order.Discount,
		order.Status,
		order.DeliveryType,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order header: %w", err)
	}

	return nil
}

// UpdateHeaderTx replaces the party, delivery and total fields of a header.
// Status and CreatedAt are left untouched.
func (s *PostgresOrderStorage) UpdateHeaderTx(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	query := `
		UPDATE orders
		SET order_type = $1, client_id = $2, provider_id = $3, courier_id = $4,
		    delivery_date = $5, total = $6, amount_due = $7, delivery_type = $8, notes = $9
		WHERE id = $10
	`

	result, err := tx.Exec(ctx, query,
		order.OrderType,
		order.ClientID,
		order.ProviderID,
		order.CourierID,
		order.DeliveryDate,
		order.Total,
		order.AmountDue,
		order.DeliveryType,
		order.Notes,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order header: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// UpdateStatusTx sets only the status column.
func (s *PostgresOrderStorage) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.OrderStatus) error {
	result, err := tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// GetHeaderTx reads the order header within the transaction.
func (s *PostgresOrderStorage) GetHeaderTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Order, error) {
	query := `
		SELECT id, order_type, client_id, provider_id, courier_id, created_at,
		       delivery_date, total, amount_due, balance, discount, status,
		       delivery_type, COALESCE(notes, '')
		FROM orders
		WHERE id = $1
	`

	order := &models.Order{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.OrderType,
		&order.ClientID,
		&order.ProviderID,
		&order.CourierID,
		&order.CreatedAt,
		&order.DeliveryDate,
		&order.Total,
		&order.AmountDue,
		&order.Balance,
		&order.Discount,
		&order.Status,
		&order.DeliveryType,
		&order.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order header: %w", err)
	}

	return order, nil
}

// InsertItemTx inserts one order line.
func (s *PostgresOrderStorage) InsertItemTx(ctx context.Context, tx pgx.Tx, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, item_no, product_id, quantity, unit_price,
		                         line_total, tax_amount, discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		item.OrderID,
		item.ItemNo,
		item.ProductID,
		item.Quantity,
		item.UnitPrice,
		item.LineTotal,
		item.TaxAmount,
		item.Discount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}

	return nil
}

// ItemsTx returns the order's lines in sequence order, within the transaction.
func (s *PostgresOrderStorage) ItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]*models.OrderItem, error) {
	query := `
		SELECT order_id, item_no, product_id, quantity, unit_price, line_total, tax_amount, discount
		FROM order_items
		WHERE order_id = $1
		ORDER BY item_no
	`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		err := rows.Scan(
			&item.OrderID,
			&item.ItemNo,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
			&item.TaxAmount,
			&item.Discount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return items, nil
}

// DeleteItemsTx removes all lines of an order.
func (s *PostgresOrderStorage) DeleteItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	return nil
}

// List returns order summaries with joined party and courier names, most
// recent first.
func (s *PostgresOrderStorage) List(ctx context.Context, filter models.OrderFilter) ([]*models.OrderSummary, error) {
	query := `
		SELECT o.id, o.order_type, o.client_id, c.name, o.provider_id, prov.name,
		       o.created_at, o.delivery_date, o.total, o.status, o.discount,
		       COALESCE(o.notes, ''), o.delivery_type,
		       o.courier_id, co.first_name || ' ' || co.last_name
		FROM orders o
		LEFT JOIN clients c ON o.client_id = c.id
		LEFT JOIN providers prov ON o.provider_id = prov.id
		LEFT JOIN couriers co ON o.courier_id = co.id
	`

	// Conditions come from a fixed set; only values are parameterized.
	var (
		conds []string
		args  []interface{}
	)
	if filter.OrderType != "" {
		args = append(args, filter.OrderType)
		conds = append(conds, fmt.Sprintf("o.order_type = $%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conds = append(conds, fmt.Sprintf("o.client_id = $%d", len(args)))
	}
	if filter.ProviderID != nil {
		args = append(args, *filter.ProviderID)
		conds = append(conds, fmt.Sprintf("o.provider_id = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.OrderSummary
	for rows.Next() {
		summary, err := scanOrderSummary(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

// GetByID returns the order summary plus its lines joined with current
// product display fields.
func (s *PostgresOrderStorage) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	query := `
		SELECT o.id, o.order_type, o.client_id, c.name, o.provider_id, prov.name,
		       o.created_at, o.delivery_date, o.total, o.status, o.discount,
		       COALESCE(o.notes, ''), o.delivery_type,
		       o.courier_id, co.first_name || ' ' || co.last_name
		FROM orders o
		LEFT JOIN clients c ON o.client_id = c.id
		LEFT JOIN providers prov ON o.provider_id = prov.id
		LEFT JOIN couriers co ON o.courier_id = co.id
		WHERE o.id = $1
	`

	summary, err := scanOrderSummary(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	itemsQuery := `
		SELECT i.product_id, p.name, p.sku, i.quantity, i.unit_price
		FROM order_items i
		LEFT JOIN products p ON i.product_id = p.id
		WHERE i.order_id = $1
		ORDER BY i.item_no
	`

	rows, err := s.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	detail := &models.OrderDetail{OrderSummary: *summary}
	for rows.Next() {
		var (
			item     models.OrderDetailItem
			quantity decimal.Decimal
			price    decimal.Decimal
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &item.SKU, &quantity, &price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Quantity, _ = quantity.Float64()
		item.UnitPrice, _ = price.Float64()
		detail.Items = append(detail.Items, &item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return detail, nil
}

// scanOrderSummary reads one summary row.
func scanOrderSummary(row pgx.Row) (*models.OrderSummary, error) {
	var (
		summary             models.OrderSummary
		createdAt, delivery time.Time
		total, discount     decimal.Decimal
	)

	err := row.Scan(
		&summary.ID,
		&summary.OrderType,
		&summary.ClientID,
		&summary.ClientName,
		&summary.ProviderID,
		&summary.ProviderName,
		&createdAt,
		&delivery,
		&total,
		&summary.Status,
		&discount,
		&summary.Notes,
		&summary.DeliveryType,
		&summary.CourierID,
		&summary.CourierName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	summary.CreatedAt = createdAt.Format(time.RFC3339)
	summary.DeliveryDate = delivery.Format(time.RFC3339)
	summary.TotalAmount, _ = total.Float64()
	summary.Discount, _ = discount.Float64()

	return &summary, nil
}
