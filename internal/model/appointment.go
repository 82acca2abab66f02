package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusActive           AppointmentStatus = "active"            // Активна
	AppointmentStatusCancelledUser    AppointmentStatus = "cancelled_user"    // Отменена пользователем
	AppointmentStatusCancelledManager AppointmentStatus = "cancelled_manager" // Отменена менеджером
)

// CancelActor кто инициировал отмену записи.
type CancelActor string

const (
	CancelActorUser    CancelActor = "user"
	CancelActorManager CancelActor = "manager"
)

type Appointment struct {
	ID        int64             `json:"id"`
	SlotID    int64             `json:"slot_id"`
	DriverID  int64             `json:"driver_id"`
	VehicleID int64             `json:"vehicle_id"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Slot   *Slot   `json:"slot,omitempty"`
	Driver *Driver `json:"driver,omitempty"`
}

// ActiveAppointment проекция активной записи для списков водителя.
type ActiveAppointment struct {
	ID       int64     `json:"id"`
	StartAt  time.Time `json:"-"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	CarPlate string    `json:"car_plate"`
}

// Effect побочное действие, которое сервис обязан выполнить после смены статуса.
type Effect string

const (
	EffectReleaseSlot  Effect = "release_slot"
	EffectNotifyDriver Effect = "notify_driver"
)

// allowedTransitions задаёт разрешённые переходы статуса записи.
// Из терминальных статусов переходов нет.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusActive:           {AppointmentStatusCancelledUser, AppointmentStatusCancelledManager},
	AppointmentStatusCancelledUser:    {},
	AppointmentStatusCancelledManager: {},
}

// CanTransition проверяет допустим ли переход from -> to.
func CanTransition(from, to AppointmentStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CancelStatus возвращает терминальный статус для инициатора отмены.
func CancelStatus(actor CancelActor) AppointmentStatus {
	if actor == CancelActorManager {
		return AppointmentStatusCancelledManager
	}
	return AppointmentStatusCancelledUser
}

// PlanCancellation вычисляет новый статус записи и список побочных действий
// для отмены. Логика переходов описана здесь явно, а не спрятана в сохранении
// записи: сервис получает план и выполняет его по шагам.
func PlanCancellation(current AppointmentStatus, actor CancelActor) (AppointmentStatus, []Effect, error) {
	next := CancelStatus(actor)
	if !CanTransition(current, next) {
		return current, nil, ErrAlreadyCancelled
	}
	return next, []Effect{EffectReleaseSlot, EffectNotifyDriver}, nil
}
