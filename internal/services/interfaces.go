package services

import (
	"context"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TxBeginner opens database transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStorage defines the order persistence operations used by services.
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

// ProductStorage defines the product operations used by services.
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

// UserStorage defines the user operations used by services.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id uuid.UUID, update storage.UserUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
