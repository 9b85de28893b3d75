package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")
)

// CatalogStorage serves the id→label reference catalogs. Localities, zones,
// neighborhoods and payment terms are read-only; categories (rubros) and
// brands (marcas) also support mutation.
type CatalogStorage interface {
	Localities(ctx context.Context) ([]*models.CatalogEntry, error)
	Zones(ctx context.Context) ([]*models.CatalogEntry, error)
	Neighborhoods(ctx context.Context) ([]*models.CatalogEntry, error)
	PaymentTerms(ctx context.Context) ([]*models.CatalogEntry, error)

	Categories(ctx context.Context) ([]*models.CatalogEntry, error)
	CreateCategory(ctx context.Context, entry *models.CatalogEntry) error
	UpdateCategory(ctx context.Context, entry *models.CatalogEntry) error

	Brands(ctx context.Context, categoryID *int64) ([]*models.CatalogEntry, error)
	CreateBrand(ctx context.Context, entry *models.CatalogEntry) error
	UpdateBrand(ctx context.Context, entry *models.CatalogEntry) error
}

// PostgresCatalogStorage implements CatalogStorage for PostgreSQL.
type PostgresCatalogStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalogStorage creates a new PostgresCatalogStorage.
func NewPostgresCatalogStorage(pool *pgxpool.Pool) *PostgresCatalogStorage {
	return &PostgresCatalogStorage{pool: pool}
}

func (s *PostgresCatalogStorage) Localities(ctx context.Context) ([]*models.CatalogEntry, error) {
	return s.listEntries(ctx, `SELECT id, name FROM localities ORDER BY name`)
}

func (s *PostgresCatalogStorage) Zones(ctx context.Context) ([]*models.CatalogEntry, error) {
	return s.listEntries(ctx, `SELECT id, name FROM zones ORDER BY name`)
}

func (s *PostgresCatalogStorage) Neighborhoods(ctx context.Context) ([]*models.CatalogEntry, error) {
	return s.listEntries(ctx, `SELECT id, name FROM neighborhoods ORDER BY name`)
}

func (s *PostgresCatalogStorage) PaymentTerms(ctx context.Context) ([]*models.CatalogEntry, error) {
	return s.listEntries(ctx, `SELECT id, name FROM payment_terms ORDER BY name`)
}

func (s *PostgresCatalogStorage) Categories(ctx context.Context) ([]*models.CatalogEntry, error) {
	return s.listEntries(ctx, `SELECT id, name FROM categories ORDER BY id`)
}

// CreateCategory inserts a new category (rubro).
func (s *PostgresCatalogStorage) CreateCategory(ctx context.Context, entry *models.CatalogEntry) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, entry.Name,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateCategory renames a category.
func (s *PostgresCatalogStorage) UpdateCategory(ctx context.Context, entry *models.CatalogEntry) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2`, entry.Name, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCatalogEntryNotFound
	}
	return nil
}

// Brands returns all brands, or only those with products in the given
// category when categoryID is set.
func (s *PostgresCatalogStorage) Brands(ctx context.Context, categoryID *int64) ([]*models.CatalogEntry, error) {
	if categoryID == nil {
		return s.listEntries(ctx, `SELECT id, name FROM brands ORDER BY name`)
	}

	query := `
		SELECT DISTINCT b.id, b.name
		FROM brands b
		INNER JOIN products p ON b.id = p.brand_id
		WHERE p.category_id = $1
		ORDER BY b.name
	`
	return s.listEntries(ctx, query, *categoryID)
}

// CreateBrand inserts a new brand (marca).
func (s *PostgresCatalogStorage) CreateBrand(ctx context.Context, entry *models.CatalogEntry) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO brands (name) VALUES ($1) RETURNING id`, entry.Name,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// UpdateBrand renames a brand.
func (s *PostgresCatalogStorage) UpdateBrand(ctx context.Context, entry *models.CatalogEntry) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE brands SET name = $1 WHERE id = $2`, entry.Name, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCatalogEntryNotFound
	}
	return nil
}

// listEntries runs an id/name query and collects the rows.
func (s *PostgresCatalogStorage) listEntries(ctx context.Context, query string, args ...interface{}) ([]*models.CatalogEntry, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var entries []*models.CatalogEntry
	for rows.Next() {
		entry := &models.CatalogEntry{}
		if err := rows.Scan(&entry.ID, &entry.Name); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return entries, nil
}
