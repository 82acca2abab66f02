package repository

import (
	"context"
	"fmt"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую запись на ТО
func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (slot_id, driver_id, vehicle_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		appointment.SlotID,
		appointment.DriverID,
		appointment.VehicleID,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, slot_id, driver_id, vehicle_id, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var appointment model.Appointment
	err := r.QueryRow(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.SlotID,
		&appointment.DriverID,
		&appointment.VehicleID,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return &appointment, nil
}

// CancelFromActive переводит активную запись в терминальный статус.
// Условие status = 'active' в запросе не даёт отменить запись дважды
// даже при конкурирующих запросах.
func (r *AppointmentRepository) CancelFromActive(ctx context.Context, id int64, status model.AppointmentStatus) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = 'active'
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("cancel appointment: %w", err)
	}

	return affected > 0, nil
}

// ActiveByDriver получает активные записи водителя, упорядоченные по
// дате и времени слота, с номером автомобиля для списка.
func (r *AppointmentRepository) ActiveByDriver(ctx context.Context, driverID int64) ([]*model.ActiveAppointment, error) {
	query := `
		SELECT a.id, s.start_at, v.plate_number
		FROM appointments a
		JOIN slots s ON s.id = a.slot_id
		JOIN vehicles v ON v.id = a.vehicle_id
		WHERE a.driver_id = $1 AND a.status = 'active'
		ORDER BY s.start_at
	`

	rows, err := r.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("active appointments by driver: %w", err)
	}
	defer rows.Close()

	var appointments []*model.ActiveAppointment
	for rows.Next() {
		var item model.ActiveAppointment
		if err := rows.Scan(&item.ID, &item.StartAt, &item.CarPlate); err != nil {
			return nil, fmt.Errorf("scan active appointment: %w", err)
		}
		item.Date = item.StartAt.Format("2006-01-02")
		item.Time = item.StartAt.Format("15:04")
		appointments = append(appointments, &item)
	}

	return appointments, nil
}
