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
	ErrClientNotFound = errors.New("client not found")
)

// ClientStorage defines client master data persistence.
type ClientStorage interface {
	List(ctx context.Context) ([]*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id int64) error
}

// PostgresClientStorage implements ClientStorage for PostgreSQL.
type PostgresClientStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresClientStorage creates a new PostgresClientStorage.
func NewPostgresClientStorage(pool *pgxpool.Pool) *PostgresClientStorage {
	return &PostgresClientStorage{pool: pool}
}

// List returns all clients ordered by id.
func (s *PostgresClientStorage) List(ctx context.Context) ([]*models.Client, error) {
	rows, err := s.pool.Query(ctx, clientSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return clients, nil
}

// GetByID returns a client by id.
func (s *PostgresClientStorage) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	return scanClient(s.pool.QueryRow(ctx, clientSelect+` WHERE id = $1`, id))
}

// Create inserts a new client.
func (s *PostgresClientStorage) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (name, address, phone, email, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		client.Name, client.Address, client.Phone, client.Email,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// Update replaces all mutable columns of a client.
func (s *PostgresClientStorage) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $1, address = $2, phone = $3, email = $4
		WHERE id = $5
	`

	result, err := s.pool.Exec(ctx, query,
		client.Name, client.Address, client.Phone, client.Email, client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// Delete removes a client.
func (s *PostgresClientStorage) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

const clientSelect = `
	SELECT id, name, address, phone, email, created_at
	FROM clients`

// scanClient reads one client row.
func scanClient(row pgx.Row) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Address,
		&client.Phone,
		&client.Email,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}

	return client, nil
}
