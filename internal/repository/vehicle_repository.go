package repository

import (
	"context"
	"fmt"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository struct {
	*base.Repository
}

func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новый автомобиль. Пробег следующего ТО пересчитывается
// перед каждым сохранением, поэтому в БД он никогда не устаревает.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	vehicle.RecalcNextService()

	query := `
		INSERT INTO vehicles (plate_number, make, model, last_service_mileage, service_interval_km, next_service_mileage)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		vehicle.PlateNumber,
		vehicle.Make,
		vehicle.Model,
		vehicle.LastServiceMileage,
		vehicle.ServiceIntervalKm,
		vehicle.NextServiceMileage,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}

	return nil
}

// GetByID получает автомобиль по ID
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	query := `
		SELECT id, plate_number, make, model, last_service_mileage, service_interval_km, next_service_mileage, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	var vehicle model.Vehicle
	err := r.QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.PlateNumber,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.LastServiceMileage,
		&vehicle.ServiceIntervalKm,
		&vehicle.NextServiceMileage,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle by id: %w", err)
	}

	return &vehicle, nil
}

// Update сохраняет автомобиль, заново вычисляя пробег следующего ТО
func (r *VehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	vehicle.RecalcNextService()

	query := `
		UPDATE vehicles
		SET plate_number = $1, make = $2, model = $3, last_service_mileage = $4,
		    service_interval_km = $5, next_service_mileage = $6, updated_at = now()
		WHERE id = $7
	`

	affected, err := r.ExecAffected(
		ctx, query,
		vehicle.PlateNumber,
		vehicle.Make,
		vehicle.Model,
		vehicle.LastServiceMileage,
		vehicle.ServiceIntervalKm,
		vehicle.NextServiceMileage,
		vehicle.ID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}

	if affected == 0 {
		return model.ErrVehicleNotFound
	}

	return nil
}
