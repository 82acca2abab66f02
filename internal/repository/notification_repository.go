package repository

import (
	"context"
	"fmt"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	*base.Repository
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет уведомление в журнал
func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (driver_id, text)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, notification.DriverID, notification.Text).
		Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// ListByDriver получает уведомления водителя, новые первыми
func (r *NotificationRepository) ListByDriver(ctx context.Context, driverID int64) ([]*model.Notification, error) {
	query := `
		SELECT id, driver_id, text, created_at
		FROM notifications
		WHERE driver_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var notification model.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.DriverID,
			&notification.Text,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}
