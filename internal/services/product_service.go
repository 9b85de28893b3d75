package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/shopspring/decimal"
)

var ErrMissingProductData = errors.New("product name is required")

// ProductService handles the product catalog.
type ProductService interface {
	List(ctx context.Context) ([]*models.ProductResponse, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductServiceImpl implements ProductService.
type ProductServiceImpl struct {
	storage ProductStorage
}

// NewProductService creates the product service.
func NewProductService(storage ProductStorage) *ProductServiceImpl {
	return &ProductServiceImpl{storage: storage}
}

// List returns all products with their category, brand and provider names.
func (s *ProductServiceImpl) List(ctx context.Context) ([]*models.ProductResponse, error) {
	products, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns one product.
func (s *ProductServiceImpl) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.storage.GetByID(ctx, id)
}

// Create adds a product to the catalog.
func (s *ProductServiceImpl) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces a product's fields.
func (s *ProductServiceImpl) Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.storage.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product. Order lines referencing it keep their recorded
// values.
func (s *ProductServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.storage.Delete(ctx, id)
}

func productFromRequest(req *models.ProductRequest) (*models.Product, error) {
	if req == nil || req.Name == "" {
		return nil, ErrMissingProductData
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	allowDiscount := true
	if req.AllowDiscount != nil {
		allowDiscount = *req.AllowDiscount
	}

	cost := decimal.Zero
	if req.Cost != nil {
		cost = *req.Cost
	}
	margin := decimal.Zero
	if req.Margin != nil {
		margin = *req.Margin
	}

	return &models.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		Price:         req.Price,
		Stock:         req.Stock,
		Cost:          cost,
		Margin:        margin,
		ProviderID:    req.ProviderID,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Status:        status,
		AllowDiscount: allowDiscount,
	}, nil
}
