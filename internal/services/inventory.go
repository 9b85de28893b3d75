package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InsufficientStockError names the product whose stock cannot cover a
// requested quantity.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// ProductNotFoundError names a product id that does not resolve.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InventoryLedger owns per-product stock movements. A reservation is an
// immediate decrement; there is no separate hold state. Both operations run
// inside the caller's transaction, so a rollback reverses them.
type InventoryLedger struct {
	products ProductStorage
}

// NewInventoryLedger creates an inventory ledger over the product storage.
func NewInventoryLedger(products ProductStorage) *InventoryLedger {
	return &InventoryLedger{products: products}
}

// Reserve decrements the product's stock by quantity. Fails without side
// effects when the quantity exceeds current stock.
func (l *InventoryLedger) Reserve(ctx context.Context, tx pgx.Tx, productID int64, quantity decimal.Decimal) error {
	err := l.products.ReserveStockTx(ctx, tx, productID, quantity)
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientStock) {
			return &InsufficientStockError{ProductID: productID}
		}
		if errors.Is(err, storage.ErrProductNotFound) {
			return &ProductNotFoundError{ProductID: productID}
		}
		return fmt.Errorf("reserve stock: %w", err)
	}

	return nil
}

// Release adds quantity back to the product's stock, reversing an earlier
// reservation.
func (l *InventoryLedger) Release(ctx context.Context, tx pgx.Tx, productID int64, quantity decimal.Decimal) error {
	err := l.products.ReleaseStockTx(ctx, tx, productID, quantity)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return &ProductNotFoundError{ProductID: productID}
		}
		return fmt.Errorf("release stock: %w", err)
	}

	return nil
}
