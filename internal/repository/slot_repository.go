package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новый слот
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (start_at, status)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, slot.StartAt, slot.Status).Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `
		SELECT id, start_at, status, created_at
		FROM slots
		WHERE id = $1
	`

	var slot model.Slot
	err := r.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.StartAt,
		&slot.Status,
		&slot.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// ListFree получает свободные слоты, упорядоченные по дате и времени.
// Если передана дата, список ограничивается этим днём.
func (r *SlotRepository) ListFree(ctx context.Context, date *time.Time) ([]*model.Slot, error) {
	query := `
		SELECT id, start_at, status, created_at
		FROM slots
		WHERE status = 'free'
		  AND ($1::date IS NULL OR start_at::date = $1::date)
		ORDER BY start_at
	`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list free slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.StartAt,
			&slot.Status,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// FreeDates получает даты в диапазоне [from, to], на которые есть
// хотя бы один свободный слот, по возрастанию.
func (r *SlotRepository) FreeDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT start_at::date AS slot_date
		FROM slots
		WHERE status = 'free'
		  AND start_at::date >= $1::date
		  AND start_at::date <= $2::date
		ORDER BY slot_date
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("free dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, nil
}

// TryReserve атомарно занимает слот. Условие status = 'free' в самом
// запросе гарантирует, что из конкурирующих запросов выиграет ровно один:
// проигравшие получат ноль затронутых строк.
func (r *SlotRepository) TryReserve(ctx context.Context, slotID int64) (bool, error) {
	query := `
		UPDATE slots
		SET status = 'busy'
		WHERE id = $1 AND status = 'free'
	`

	affected, err := r.ExecAffected(ctx, query, slotID)
	if err != nil {
		return false, fmt.Errorf("reserve slot: %w", err)
	}

	return affected > 0, nil
}

// Release освобождает слот. Повторное освобождение уже свободного слота
// не является ошибкой.
func (r *SlotRepository) Release(ctx context.Context, slotID int64) error {
	query := `
		UPDATE slots
		SET status = 'free'
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}

	if affected == 0 {
		return model.ErrSlotNotFound
	}

	return nil
}
