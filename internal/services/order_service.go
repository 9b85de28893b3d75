package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingOrderData    = errors.New("ordering party and a non-empty item list are required")
	ErrInvalidQuantity     = errors.New("item quantity must be positive")
	ErrInvalidDeliveryType = errors.New("unknown delivery type")
	ErrCourierRequired     = errors.New("a courier is required for route deliveries")
	ErrTooManyItems        = errors.New("an order can carry at most 99 lines")
)

// maxOrderLines bounds the item count so line numbers stay two digits and
// item_no sorts lexicographically in insertion order.
const maxOrderLines = 99

// Orders without an explicit delivery date are due a week out.
const defaultDeliveryLead = 7 * 24 * time.Hour

// OrderService is the order workflow: transactional create/update plus the
// read path.
type OrderService interface {
	Create(ctx context.Context, req *models.OrderRequest) (*models.OrderConfirmation, error)
	Update(ctx context.Context, id int64, req *models.OrderRequest) (*models.OrderConfirmation, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.OrderSummary, error)
	Get(ctx context.Context, id int64) (*models.OrderDetail, error)
}

// OrderServiceImpl implements OrderService. Every mutation runs inside a
// single database transaction; any failure rolls the whole unit back.
type OrderServiceImpl struct {
	db      TxBeginner
	orders  OrderStorage
	ledger  *InventoryLedger
	pricing *PricingResolver
}

// NewOrderService creates the order service.
func NewOrderService(db TxBeginner, orders OrderStorage, products ProductStorage, taxRate decimal.Decimal) *OrderServiceImpl {
	return &OrderServiceImpl{
		db:      db,
		orders:  orders,
		ledger:  NewInventoryLedger(products),
		pricing: NewPricingResolver(products, taxRate),
	}
}

// Create validates the request, prices and reserves every line, and persists
// the header plus lines atomically.
func (s *OrderServiceImpl) Create(ctx context.Context, req *models.OrderRequest) (*models.OrderConfirmation, error) {
	orderType, deliveryType, err := validateOrderRequest(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	items, total, err := s.buildItems(ctx, tx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderType:    orderType,
		ClientID:     req.ClientID,
		ProviderID:   req.ProviderID,
		CourierID:    req.CourierID,
		DeliveryDate: resolveDeliveryDate(req.DeliveryDate),
		Total:        total,
		AmountDue:    total,
		Balance:      decimal.Zero,
		Discount:     decimal.Zero,
		Status:       models.OrderStatusPending,
		DeliveryType: deliveryType,
		Notes:        req.Notes,
	}

	if err := s.orders.CreateHeaderTx(ctx, tx, order); err != nil {
		return nil, err
	}

	for i, item := range items {
		item.OrderID = order.ID
		item.ItemNo = utils.ItemNumber(i + 1)
		if err := s.orders.InsertItemTx(ctx, tx, item); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return confirmation(order.ID, total, order.Status), nil
}

// Update replaces an order. A request carrying a status and no items only
// changes the status. Otherwise the old lines are released and deleted, and
// the new item set goes through the same pricing and reservation steps as
// Create, all inside one transaction, so a failure restores the pre-update
// state including stock.
func (s *OrderServiceImpl) Update(ctx context.Context, id int64, req *models.OrderRequest) (*models.OrderConfirmation, error) {
	if req != nil && req.Status != "" && len(req.Items) == 0 {
		return s.updateStatus(ctx, id, models.OrderStatus(req.Status))
	}

	orderType, deliveryType, err := validateOrderRequest(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.orders.GetHeaderTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	// Compensate first: put the old reservations back before re-validating
	// the new item set against stock.
	oldItems, err := s.orders.ItemsTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	for _, old := range oldItems {
		if err := s.ledger.Release(ctx, tx, old.ProductID, old.Quantity); err != nil {
			return nil, err
		}
	}
	if err := s.orders.DeleteItemsTx(ctx, tx, id); err != nil {
		return nil, err
	}

	items, total, err := s.buildItems(ctx, tx, req.Items)
	if err != nil {
		return nil, err
	}

	order.OrderType = orderType
	order.ClientID = req.ClientID
	order.ProviderID = req.ProviderID
	order.CourierID = req.CourierID
	order.DeliveryDate = resolveDeliveryDate(req.DeliveryDate)
	order.Total = total
	order.AmountDue = total
	order.DeliveryType = deliveryType
	order.Notes = req.Notes

	if err := s.orders.UpdateHeaderTx(ctx, tx, order); err != nil {
		return nil, err
	}

	for i, item := range items {
		item.OrderID = order.ID
		item.ItemNo = utils.ItemNumber(i + 1)
		if err := s.orders.InsertItemTx(ctx, tx, item); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return confirmation(order.ID, total, order.Status), nil
}

// List returns order summaries, most recent first.
func (s *OrderServiceImpl) List(ctx context.Context, filter models.OrderFilter) ([]*models.OrderSummary, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns one order with its lines.
func (s *OrderServiceImpl) Get(ctx context.Context, id int64) (*models.OrderDetail, error) {
	return s.orders.GetByID(ctx, id)
}

// updateStatus is the narrow status-only path; it never touches lines or stock.
func (s *OrderServiceImpl) updateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.OrderConfirmation, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.orders.GetHeaderTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatusTx(ctx, tx, id, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return confirmation(id, order.Total, status), nil
}

// buildItems prices and reserves each requested line in request order and
// returns the lines plus their total.
func (s *OrderServiceImpl) buildItems(ctx context.Context, tx pgx.Tx, requested []models.OrderItemRequest) ([]*models.OrderItem, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]*models.OrderItem, 0, len(requested))

	for _, it := range requested {
		price, err := s.pricing.ResolveLine(ctx, tx, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, decimal.Zero, err
		}

		if err := s.ledger.Reserve(ctx, tx, it.ProductID, it.Quantity); err != nil {
			return nil, decimal.Zero, err
		}

		items = append(items, &models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price.UnitPrice,
			LineTotal: price.LineTotal,
			TaxAmount: price.TaxAmount,
			Discount:  decimal.Zero,
		})
		total = total.Add(price.LineTotal)
	}

	return items, total, nil
}

// validateOrderRequest checks the request shape before any transaction is
// opened and derives the order type and delivery type.
func validateOrderRequest(req *models.OrderRequest) (models.OrderType, models.DeliveryType, error) {
	if req == nil || len(req.Items) == 0 {
		return "", "", ErrMissingOrderData
	}
	if len(req.Items) > maxOrderLines {
		return "", "", ErrTooManyItems
	}

	hasClient := req.ClientID != nil
	hasProvider := req.ProviderID != nil
	if hasClient == hasProvider {
		return "", "", ErrMissingOrderData
	}

	for _, it := range req.Items {
		if it.ProductID <= 0 {
			return "", "", ErrMissingOrderData
		}
		if !it.Quantity.IsPositive() {
			return "", "", ErrInvalidQuantity
		}
	}

	deliveryType, err := parseDeliveryType(req.DeliveryType)
	if err != nil {
		return "", "", err
	}
	if deliveryType == models.DeliveryTypeRoute && req.CourierID == nil {
		return "", "", ErrCourierRequired
	}

	orderType := models.OrderTypeClient
	if hasProvider {
		orderType = models.OrderTypeProvider
	}

	return orderType, deliveryType, nil
}

// parseDeliveryType normalizes the wire value; "por reparto" is the legacy
// spelling of route delivery.
func parseDeliveryType(value string) (models.DeliveryType, error) {
	switch value {
	case "", string(models.DeliveryTypePickup):
		return models.DeliveryTypePickup, nil
	case string(models.DeliveryTypeRoute), "por reparto":
		return models.DeliveryTypeRoute, nil
	default:
		return "", ErrInvalidDeliveryType
	}
}

// resolveDeliveryDate returns the caller's date or now plus the default lead.
func resolveDeliveryDate(requested *models.RequestDate) time.Time {
	if requested != nil {
		return requested.Time
	}
	return time.Now().Add(defaultDeliveryLead)
}

// confirmation builds the mutation response.
func confirmation(id int64, total decimal.Decimal, status models.OrderStatus) *models.OrderConfirmation {
	totalAmount, _ := total.Float64()
	return &models.OrderConfirmation{
		ID:          id,
		TotalAmount: totalAmount,
		Status:      string(status),
	}
}
