package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderType discriminates the ordering party of an order.
type OrderType string

const (
	OrderTypeClient   OrderType = "client"
	OrderTypeProvider OrderType = "provider"
)

// OrderStatus is an open set; these are the values the system assigns itself.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
)

// DeliveryType describes how an order leaves the warehouse.
type DeliveryType string

const (
	// DeliveryTypePickup: the ordering party picks the order up at the warehouse.
	DeliveryTypePickup DeliveryType = "deposito"
	// DeliveryTypeRoute: a courier delivers the order on a route.
	DeliveryTypeRoute DeliveryType = "reparto"
)

// Order is the order header. Line items live in OrderItem.
type Order struct {
	ID           int64           `db:"id"`
	OrderType    OrderType       `db:"order_type"`
	ClientID     *int64          `db:"client_id"`
	ProviderID   *int64          `db:"provider_id"`
	CourierID    *int64          `db:"courier_id"`
	CreatedAt    time.Time       `db:"created_at"`
	DeliveryDate time.Time       `db:"delivery_date"`
	Total        decimal.Decimal `db:"total"`
	AmountDue    decimal.Decimal `db:"amount_due"`
	Balance      decimal.Decimal `db:"balance"`
	Discount     decimal.Decimal `db:"discount"`
	Status       OrderStatus     `db:"status"`
	DeliveryType DeliveryType    `db:"delivery_type"`
	Notes        string          `db:"notes"`
}

// OrderItem is one product line of an order. UnitPrice is snapshotted at
// order time and never follows later catalog price changes.
type OrderItem struct {
	OrderID   int64           `db:"order_id"`
	ItemNo    string          `db:"item_no"`
	ProductID int64           `db:"product_id"`
	Quantity  decimal.Decimal `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	LineTotal decimal.Decimal `db:"line_total"`
	TaxAmount decimal.Decimal `db:"tax_amount"`
	Discount  decimal.Decimal `db:"discount"`
}

// RequestDate is the delivery_date wire value. Clients send either a full
// RFC3339 timestamp or a bare date such as "2025-09-01".
type RequestDate struct {
	time.Time
}

func (d *RequestDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("unrecognized date %q", raw)
}

// OrderItemRequest is one requested line in a create/update request.
type OrderItemRequest struct {
	ProductID int64            `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// OrderRequest is the body of POST /orders and PUT /orders/:id. On update, a
// request carrying a status and no items performs a status-only update.
type OrderRequest struct {
	ClientID     *int64             `json:"client_id,omitempty"`
	ProviderID   *int64             `json:"provider_id,omitempty"`
	Items        []OrderItemRequest `json:"items"`
	DeliveryType string             `json:"delivery_type"`
	DeliveryDate *RequestDate       `json:"delivery_date,omitempty"`
	CourierID    *int64             `json:"repartidor_id,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Status       string             `json:"status,omitempty"`
}

// OrderConfirmation is the response to a successful create/update.
type OrderConfirmation struct {
	ID          int64   `json:"id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// OrderFilter narrows the order list.
type OrderFilter struct {
	OrderType  string
	ClientID   *int64
	ProviderID *int64
}

// OrderSummary is one row of the order list with joined display fields.
type OrderSummary struct {
	ID           int64   `json:"id"`
	OrderType    string  `json:"order_type"`
	ClientID     *int64  `json:"client_id,omitempty"`
	ClientName   *string `json:"client_name,omitempty"`
	ProviderID   *int64  `json:"provider_id,omitempty"`
	ProviderName *string `json:"provider_name,omitempty"`
	CreatedAt    string  `json:"created_at"`
	DeliveryDate string  `json:"delivery_date"`
	TotalAmount  float64 `json:"total_amount"`
	Status       string  `json:"status"`
	Discount     float64 `json:"discount"`
	Notes        string  `json:"notes,omitempty"`
	DeliveryType string  `json:"delivery_type"`
	CourierID    *int64  `json:"repartidor_id,omitempty"`
	CourierName  *string `json:"repartidor_name,omitempty"`
}

// OrderDetail is the order summary plus its line items in stable order.
type OrderDetail struct {
	OrderSummary
	Items []*OrderDetailItem `json:"items"`
}

// OrderDetailItem joins a line with current product display fields. Name and
// SKU reflect the catalog as of the read; UnitPrice stays the snapshot.
type OrderDetailItem struct {
	ProductID int64   `json:"product_id"`
	Name      *string `json:"name"`
	SKU       *string `json:"sku"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
