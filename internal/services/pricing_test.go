package services

import (
	"context"
	"errors"
	"testing"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func TestPricingResolver_ResolveLine(t *testing.T) {
	ctx := context.Background()
	tx := &mockTx{}

	catalogPrice := decimal.NewFromFloat(12.50)
	productStorage := &storage.MockProductStorage{
		GetTxFunc: func(ctx context.Context, tx pgx.Tx, id int64) (*models.Product, error) {
			return &models.Product{ID: id, Price: catalogPrice}, nil
		},
	}

	tests := []struct {
		name          string
		quantity      decimal.Decimal
		override      *decimal.Decimal
		wantUnitPrice decimal.Decimal
		wantLineTotal decimal.Decimal
	}{
		{
			name:          "catalog price",
			quantity:      decimal.NewFromInt(4),
			wantUnitPrice: catalogPrice,
			wantLineTotal: decimal.NewFromFloat(50.00),
		},
		{
			name:          "override wins",
			quantity:      decimal.NewFromInt(2),
			override:      decPtr(10.00),
			wantUnitPrice: decimal.NewFromFloat(10.00),
			wantLineTotal: decimal.NewFromFloat(20.00),
		},
		{
			name:          "zero override falls back to catalog",
			quantity:      decimal.NewFromInt(1),
			override:      decPtr(0),
			wantUnitPrice: catalogPrice,
			wantLineTotal: catalogPrice,
		},
		{
			name:          "negative override falls back to catalog",
			quantity:      decimal.NewFromInt(1),
			override:      decPtr(-3.00),
			wantUnitPrice: catalogPrice,
			wantLineTotal: catalogPrice,
		},
	}

	resolver := NewPricingResolver(productStorage, decimal.NewFromFloat(0.21))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := resolver.ResolveLine(ctx, tx, 1, tt.quantity, tt.override)
			if err != nil {
				t.Fatalf("ResolveLine() error = %v", err)
			}

			if !price.UnitPrice.Equal(tt.wantUnitPrice) {
				t.Errorf("ResolveLine() UnitPrice = %v, want %v", price.UnitPrice, tt.wantUnitPrice)
			}
			if !price.LineTotal.Equal(tt.wantLineTotal) {
				t.Errorf("ResolveLine() LineTotal = %v, want %v", price.LineTotal, tt.wantLineTotal)
			}
			wantTax := tt.wantLineTotal.Mul(decimal.NewFromFloat(0.21))
			if !price.TaxAmount.Equal(wantTax) {
				t.Errorf("ResolveLine() TaxAmount = %v, want %v", price.TaxAmount, wantTax)
			}
		})
	}
}

func TestPricingResolver_ResolveLineProductNotFound(t *testing.T) {
	ctx := context.Background()
	tx := &mockTx{}

	productStorage := &storage.MockProductStorage{
		GetTxFunc: func(ctx context.Context, tx pgx.Tx, id int64) (*models.Product, error) {
			return nil, storage.ErrProductNotFound
		},
	}

	resolver := NewPricingResolver(productStorage, decimal.NewFromFloat(0.21))

	_, err := resolver.ResolveLine(ctx, tx, 77, decimal.NewFromInt(1), nil)

	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("ResolveLine() error = %v, want ProductNotFoundError", err)
	}
	if notFound.ProductID != 77 {
		t.Errorf("ResolveLine() error names product %d, want 77", notFound.ProductID)
	}
}

func TestNewPricingResolverDefaultRate(t *testing.T) {
	resolver := NewPricingResolver(&storage.MockProductStorage{}, decimal.Zero)

	want := decimal.NewFromFloat(0.21)
	if !resolver.taxRate.Equal(want) {
		t.Errorf("taxRate = %v, want %v", resolver.taxRate, want)
	}
}
