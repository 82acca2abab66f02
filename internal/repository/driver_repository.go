package repository

import (
	"context"
	"fmt"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepository struct {
	*base.Repository
}

func NewDriverRepository(pool *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового водителя
func (r *DriverRepository) Create(ctx context.Context, driver *model.Driver) error {
	query := `
		INSERT INTO drivers (first_name, last_name, phone, vehicle_id, chat_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		driver.FirstName,
		driver.LastName,
		driver.Phone,
		driver.VehicleID,
		driver.ChatID,
	).Scan(&driver.ID, &driver.CreatedAt)

	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	return nil
}

// GetByID получает водителя по ID
func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*model.Driver, error) {
	query := `
		SELECT id, first_name, last_name, phone, vehicle_id, chat_id, created_at
		FROM drivers
		WHERE id = $1
	`

	var driver model.Driver
	err := r.QueryRow(ctx, query, id).Scan(
		&driver.ID,
		&driver.FirstName,
		&driver.LastName,
		&driver.Phone,
		&driver.VehicleID,
		&driver.ChatID,
		&driver.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver by id: %w", err)
	}

	return &driver, nil
}

// List получает всех водителей, упорядоченных по фамилии и имени
func (r *DriverRepository) List(ctx context.Context) ([]*model.Driver, error) {
	query := `
		SELECT id, first_name, last_name, phone, vehicle_id, chat_id, created_at
		FROM drivers
		ORDER BY last_name, first_name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*model.Driver
	for rows.Next() {
		var driver model.Driver
		err := rows.Scan(
			&driver.ID,
			&driver.FirstName,
			&driver.LastName,
			&driver.Phone,
			&driver.VehicleID,
			&driver.ChatID,
			&driver.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, &driver)
	}

	return drivers, nil
}

// Update обновляет данные водителя. Привязка к автомобилю не меняется.
func (r *DriverRepository) Update(ctx context.Context, driver *model.Driver) error {
	query := `
		UPDATE drivers
		SET first_name = $1, last_name = $2, phone = $3, chat_id = $4
		WHERE id = $5
	`

	affected, err := r.ExecAffected(
		ctx, query,
		driver.FirstName,
		driver.LastName,
		driver.Phone,
		driver.ChatID,
		driver.ID,
	)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}

	if affected == 0 {
		return model.ErrDriverNotFound
	}

	return nil
}
