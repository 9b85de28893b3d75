package storage

import (
	"context"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// MockProductStorage is a hand-rolled mock for tests in other packages.
type MockProductStorage struct {
	ListFunc           func(ctx context.Context) ([]*models.ProductResponse, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.Product, error)
	CreateFunc         func(ctx context.Context, product *models.Product) error
	UpdateFunc         func(ctx context.Context, product *models.Product) error
	DeleteFunc         func(ctx context.Context, id int64) error
	GetTxFunc          func(ctx context.Context, tx pgx.Tx, id int64) (*models.Product, error)
	ReserveStockTxFunc func(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error
	ReleaseStockTxFunc func(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error
}

func (m *MockProductStorage) List(ctx context.Context) ([]*models.ProductResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.ProductResponse{}, nil
}

func (m *MockProductStorage) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrProductNotFound
}

func (m *MockProductStorage) Create(ctx context.Context, product *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductStorage) Update(ctx context.Context, product *models.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductStorage) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProductStorage) GetTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Product, error) {
	if m.GetTxFunc != nil {
		return m.GetTxFunc(ctx, tx, id)
	}
	return nil, ErrProductNotFound
}

func (m *MockProductStorage) ReserveStockTx(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error {
	if m.ReserveStockTxFunc != nil {
		return m.ReserveStockTxFunc(ctx, tx, id, quantity)
	}
	return nil
}

func (m *MockProductStorage) ReleaseStockTx(ctx context.Context, tx pgx.Tx, id int64, quantity decimal.Decimal) error {
	if m.ReleaseStockTxFunc != nil {
		return m.ReleaseStockTxFunc(ctx, tx, id, quantity)
	}
	return nil
}
