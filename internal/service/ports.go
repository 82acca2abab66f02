package service

import (
	"context"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
)

// Интерфейсы хранилищ. Реализуются репозиториями поверх PostgreSQL,
// в тестах подменяются фейками в памяти.

type DriverStore interface {
	Create(ctx context.Context, driver *model.Driver) error
	GetByID(ctx context.Context, id int64) (*model.Driver, error)
	List(ctx context.Context) ([]*model.Driver, error)
	Update(ctx context.Context, driver *model.Driver) error
}

type VehicleStore interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	GetByID(ctx context.Context, id int64) (*model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
}

type SlotStore interface {
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	ListFree(ctx context.Context, date *time.Time) ([]*model.Slot, error)
	FreeDates(ctx context.Context, from, to time.Time) ([]time.Time, error)
	// TryReserve атомарно занимает свободный слот. Возвращает false,
	// если слот уже занят: из конкурирующих вызовов выигрывает один.
	TryReserve(ctx context.Context, slotID int64) (bool, error)
	Release(ctx context.Context, slotID int64) error
}

type AppointmentStore interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	CancelFromActive(ctx context.Context, id int64, status model.AppointmentStatus) (bool, error)
	ActiveByDriver(ctx context.Context, driverID int64) ([]*model.ActiveAppointment, error)
}

type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByDriver(ctx context.Context, driverID int64) ([]*model.Notification, error)
}

// Notifier внешний канал доставки уведомлений водителю.
// Журнальную запись сервис сохраняет сам до попытки доставки.
type Notifier interface {
	Notify(ctx context.Context, driver *model.Driver, text string) error
}

// Clock источник текущего времени, подменяется в тестах.
type Clock func() time.Time
