package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProviderNotFound = errors.New("provider not found")
)

// ProviderStorage defines provider master data persistence.
type ProviderStorage interface {
	List(ctx context.Context) ([]*models.Provider, error)
	GetByID(ctx context.Context, id int64) (*models.Provider, error)
	Create(ctx context.Context, provider *models.Provider) error
	Update(ctx context.Context, provider *models.Provider) error
	Delete(ctx context.Context, id int64) error
}

// PostgresProviderStorage implements ProviderStorage for PostgreSQL.
type PostgresProviderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresProviderStorage creates a new PostgresProviderStorage.
func NewPostgresProviderStorage(pool *pgxpool.Pool) *PostgresProviderStorage {
	return &PostgresProviderStorage{pool: pool}
}

// List returns all providers ordered by id.
func (s *PostgresProviderStorage) List(ctx context.Context) ([]*models.Provider, error) {
	rows, err := s.pool.Query(ctx, providerSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	var providers []*models.Provider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return providers, nil
}

// GetByID returns a provider by id.
func (s *PostgresProviderStorage) GetByID(ctx context.Context, id int64) (*models.Provider, error) {
	return scanProvider(s.pool.QueryRow(ctx, providerSelect+` WHERE id = $1`, id))
}

// Create inserts a new provider.
func (s *PostgresProviderStorage) Create(ctx context.Context, provider *models.Provider) error {
	query := `
		INSERT INTO providers (name, contact, phone, email, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		provider.Name, provider.Contact, provider.Phone, provider.Email,
	).Scan(&provider.ID, &provider.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	return nil
}

// Update replaces all mutable columns of a provider.
func (s *PostgresProviderStorage) Update(ctx context.Context, provider *models.Provider) error {
	query := `
		UPDATE providers
		SET name = $1, contact = $2, phone = $3, email = $4
		WHERE id = $5
	`

	result, err := s.pool.Exec(ctx, query,
		provider.Name, provider.Contact, provider.Phone, provider.Email, provider.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProviderNotFound
	}

	return nil
}

// Delete removes a provider.
func (s *PostgresProviderStorage) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProviderNotFound
	}

	return nil
}

const providerSelect = `
	SELECT id, name, contact, phone, email, created_at
	FROM providers`

// scanProvider reads one provider row.
func scanProvider(row pgx.Row) (*models.Provider, error) {
	provider := &models.Provider{}
	err := row.Scan(
		&provider.ID,
		&provider.Name,
		&provider.Contact,
		&provider.Phone,
		&provider.Email,
		&provider.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to scan provider: %w", err)
	}

	return provider, nil
}
