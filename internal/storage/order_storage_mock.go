package storage

import (
	"context"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/jackc/pgx/v5"
)

// MockOrderStorage is a hand-rolled mock for tests in other packages.
type MockOrderStorage struct {
	CreateHeaderTxFunc func(ctx context.Context, tx pgx.Tx, order *models.Order) error
	UpdateHeaderTxFunc func(ctx context.Context, tx pgx.Tx, order *models.Order) error
	UpdateStatusTxFunc func(ctx context.Context, tx pgx.Tx, id int64, status models.OrderStatus) error
	GetHeaderTxFunc    func(ctx context.Context, tx pgx.Tx, id int64) (*models.Order, error)
	InsertItemTxFunc   func(ctx context.Context, tx pgx.Tx, item *models.OrderItem) error
	ItemsTxFunc        func(ctx context.Context, tx pgx.Tx, orderID int64) ([]*models.OrderItem, error)
	DeleteItemsTxFunc  func(ctx context.Context, tx pgx.Tx, orderID int64) error
	ListFunc           func(ctx context.Context, filter models.OrderFilter) ([]*models.OrderSummary, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.OrderDetail, error)
}

func (m *MockOrderStorage) CreateHeaderTx(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	if m.CreateHeaderTxFunc != nil {
		return m.CreateHeaderTxFunc(ctx, tx, order)
	}
	order.ID = 1
	return nil
}

func (m *MockOrderStorage) UpdateHeaderTx(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	if m.UpdateHeaderTxFunc != nil {
		return m.UpdateHeaderTxFunc(ctx, tx, order)
	}
	return nil
}

func (m *MockOrderStorage) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.OrderStatus) error {
	if m.UpdateStatusTxFunc != nil {
		return m.UpdateStatusTxFunc(ctx, tx, id, status)
	}
	return nil
}

func (m *MockOrderStorage) GetHeaderTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Order, error) {
	if m.GetHeaderTxFunc != nil {
		return m.GetHeaderTxFunc(ctx, tx, id)
	}
	return nil, ErrOrderNotFound
}

func (m *MockOrderStorage) InsertItemTx(ctx context.Context, tx pgx.Tx, item *models.OrderItem) error {
	if m.InsertItemTxFunc != nil {
		return m.InsertItemTxFunc(ctx, tx, item)
	}
	return nil
}

func (m *MockOrderStorage) ItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]*models.OrderItem, error) {
	if m.ItemsTxFunc != nil {
		return m.ItemsTxFunc(ctx, tx, orderID)
	}
	return []*models.OrderItem{}, nil
}

func (m *MockOrderStorage) DeleteItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	if m.DeleteItemsTxFunc != nil {
		return m.DeleteItemsTxFunc(ctx, tx, orderID)
	}
	return nil
}

func (m *MockOrderStorage) List(ctx context.Context, filter models.OrderFilter) ([]*models.OrderSummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.OrderSummary{}, nil
}

func (m *MockOrderStorage) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrOrderNotFound
}
