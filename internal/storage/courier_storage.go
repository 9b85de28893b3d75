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
	ErrCourierNotFound = errors.New("courier not found")
)

// CourierStorage defines courier (repartidor) master data persistence.
type CourierStorage interface {
	List(ctx context.Context) ([]*models.Courier, error)
	GetByID(ctx context.Context, id int64) (*models.Courier, error)
	Create(ctx context.Context, courier *models.Courier) error
	Update(ctx context.Context, courier *models.Courier) error
	Delete(ctx context.Context, id int64) error
}

// PostgresCourierStorage implements CourierStorage for PostgreSQL.
type PostgresCourierStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresCourierStorage creates a new PostgresCourierStorage.
func NewPostgresCourierStorage(pool *pgxpool.Pool) *PostgresCourierStorage {
	return &PostgresCourierStorage{pool: pool}
}

// List returns all couriers, most recently added first.
func (s *PostgresCourierStorage) List(ctx context.Context) ([]*models.Courier, error) {
	rows, err := s.pool.Query(ctx, courierSelect+` ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query couriers: %w", err)
	}
	defer rows.Close()

	var couriers []*models.Courier
	for rows.Next() {
		courier, err := scanCourier(rows)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, courier)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return couriers, nil
}

// GetByID returns a courier by id.
func (s *PostgresCourierStorage) GetByID(ctx context.Context, id int64) (*models.Courier, error) {
	return scanCourier(s.pool.QueryRow(ctx, courierSelect+` WHERE id = $1`, id))
}

// Create inserts a new courier.
func (s *PostgresCourierStorage) Create(ctx context.Context, courier *models.Courier) error {
	query := `
		INSERT INTO couriers (first_name, last_name, dni, phone, address, email, hired_at,
		                      status, notes, license_number, license_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		courier.FirstName, courier.LastName, courier.DNI, courier.Phone,
		courier.Address, courier.Email, courier.HiredAt, courier.Status,
		courier.Notes, courier.LicenseNumber, courier.LicenseExpiresAt,
	).Scan(&courier.ID, &courier.CreatedAt, &courier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create courier: %w", err)
	}

	return nil
}

// Update replaces all mutable columns of a courier.
func (s *PostgresCourierStorage) Update(ctx context.Context, courier *models.Courier) error {
	query := `
		UPDATE couriers
		SET first_name = $1, last_name = $2, dni = $3, phone = $4, address = $5,
		    email = $6, hired_at = $7, status = $8, notes = $9, license_number = $10,
		    license_expires_at = $11, updated_at = NOW()
		WHERE id = $12
	`

	result, err := s.pool.Exec(ctx, query,
		courier.FirstName, courier.LastName, courier.DNI, courier.Phone,
		courier.Address, courier.Email, courier.HiredAt, courier.Status,
		courier.Notes, courier.LicenseNumber, courier.LicenseExpiresAt,
		courier.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update courier: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCourierNotFound
	}

	return nil
}

// Delete removes a courier.
func (s *PostgresCourierStorage) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM couriers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete courier: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCourierNotFound
	}

	return nil
}

const courierSelect = `
	SELECT id, first_name, last_name, dni, phone, address, email, hired_at,
	       status, notes, license_number, license_expires_at, created_at, updated_at
	FROM couriers`

// scanCourier reads one courier row.
func scanCourier(row pgx.Row) (*models.Courier, error) {
	courier := &models.Courier{}
	err := row.Scan(
		&courier.ID,
		&courier.FirstName,
		&courier.LastName,
		&courier.DNI,
		&courier.Phone,
		&courier.Address,
		&courier.Email,
		&courier.HiredAt,
		&courier.Status,
		&courier.Notes,
		&courier.LicenseNumber,
		&courier.LicenseExpiresAt,
		&courier.CreatedAt,
		&courier.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourierNotFound
		}
		return nil, fmt.Errorf("failed to scan courier: %w", err)
	}

	return courier, nil
}
