package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is a catalog product. Stock is mutated only by the order
// transaction; Price is the reference unit price used when an order line
// carries no override.
type Product struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	SKU           *string         `db:"sku"`
	Price         decimal.Decimal `db:"price"`
	Stock         decimal.Decimal `db:"stock"`
	ProviderID    *int64          `db:"provider_id"`
	CategoryID    *int64          `db:"category_id"`
	BrandID       *int64          `db:"brand_id"`
	Cost          decimal.Decimal `db:"cost"`
	Margin        decimal.Decimal `db:"margin"`
	Status        string          `db:"status"`
	AllowDiscount bool            `db:"allow_discount"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// ProductRequest is the body of POST /products and PUT /products/:id.
type ProductRequest struct {
	Name          string           `json:"name"`
	SKU           *string          `json:"sku,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	Stock         decimal.Decimal  `json:"stock"`
	ProviderID    *int64           `json:"provider_id,omitempty"`
	CategoryID    *int64           `json:"rubro_id,omitempty"`
	BrandID       *int64           `json:"marca_id,omitempty"`
	Cost          *decimal.Decimal `json:"costo,omitempty"`
	Margin        *decimal.Decimal `json:"margen,omitempty"`
	Status        string           `json:"estado,omitempty"`
	AllowDiscount *bool            `json:"permite_descuento,omitempty"`
}

// ProductResponse is the public view of a product, with joined display names
// on the list endpoint.
type ProductResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SKU           *string `json:"sku"`
	Price         float64 `json:"price"`
	Stock         float64 `json:"stock"`
	ProviderID    *int64  `json:"provider_id,omitempty"`
	ProviderName  *string `json:"provider_name,omitempty"`
	CategoryID    *int64  `json:"rubro_id,omitempty"`
	CategoryName  *string `json:"rubro_name,omitempty"`
	BrandID       *int64  `json:"marca_id,omitempty"`
	BrandName     *string `json:"marca_name,omitempty"`
	Cost          float64 `json:"costo"`
	Margin        float64 `json:"margen"`
	Status        string  `json:"estado"`
	AllowDiscount bool    `json:"permite_descuento"`
}
