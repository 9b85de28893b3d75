package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LinePrice is the priced-out result for one order line.
type LinePrice struct {
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	TaxAmount decimal.Decimal
}

// PricingResolver determines the unit price and tax of an order line. A
// positive caller-supplied override wins over the catalog reference price.
type PricingResolver struct {
	products ProductStorage
	taxRate  decimal.Decimal
}

// NewPricingResolver creates a pricing resolver with the given tax rate.
func NewPricingResolver(products ProductStorage, taxRate decimal.Decimal) *PricingResolver {
	if !taxRate.IsPositive() {
		taxRate = decimal.NewFromFloat(0.21)
	}
	return &PricingResolver{products: products, taxRate: taxRate}
}

// ResolveLine prices one line within the caller's transaction. The product
// must exist even when an override price is supplied.
func (r *PricingResolver) ResolveLine(ctx context.Context, tx pgx.Tx, productID int64, quantity decimal.Decimal, override *decimal.Decimal) (*LinePrice, error) {
	product, err := r.products.GetTx(ctx, tx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, &ProductNotFoundError{ProductID: productID}
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	unitPrice := product.Price
	if override != nil && override.IsPositive() {
		unitPrice = *override
	}

	lineTotal := unitPrice.Mul(quantity)

	return &LinePrice{
		UnitPrice: unitPrice,
		LineTotal: lineTotal,
		TaxAmount: lineTotal.Mul(r.taxRate),
	}, nil
}
