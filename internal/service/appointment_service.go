package service

import (
	"context"
	"fmt"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"go.uber.org/zap"
)

// AppointmentService управляет записями на ТО: бронирует и освобождает
// слоты, следит за переходами статусов и уведомляет водителей об отмене.
type AppointmentService struct {
	driverStore       DriverStore
	slotStore         SlotStore
	appointmentStore  AppointmentStore
	notificationStore NotificationStore
	notifier          Notifier
	logger            *zap.Logger
}

func NewAppointmentService(
	driverStore DriverStore,
	slotStore SlotStore,
	appointmentStore AppointmentStore,
	notificationStore NotificationStore,
	notifier Notifier,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		driverStore:       driverStore,
		slotStore:         slotStore,
		appointmentStore:  appointmentStore,
		notificationStore: notificationStore,
		notifier:          notifier,
		logger:            logger,
	}
}

// CreateAppointment создаёт запись водителя на слот. Автомобиль записи
// всегда равен привязанному автомобилю водителя: явно переданный чужой
// автомобиль отклоняется до любых изменений слота. Если vehicleID равен
// нулю, берётся автомобиль водителя.
func (s *AppointmentService) CreateAppointment(ctx context.Context, driverID, vehicleID, slotID int64) (*model.Appointment, error) {
	driver, err := s.driverStore.GetByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}
	if driver == nil {
		return nil, model.ErrDriverNotFound
	}

	if vehicleID == 0 {
		vehicleID = driver.VehicleID
	}
	if vehicleID != driver.VehicleID {
		return nil, model.ErrVehicleDriverMismatch
	}

	slot, err := s.slotStore.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, model.ErrSlotNotFound
	}

	// Единственный арбитр двойного бронирования: условное обновление
	// статуса слота. Проверять slot.Status заранее бессмысленно,
	// решает только исход TryReserve.
	reserved, err := s.slotStore.TryReserve(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("reserve slot: %w", err)
	}
	if !reserved {
		return nil, model.ErrSlotUnavailable
	}

	appointment := &model.Appointment{
		SlotID:    slotID,
		DriverID:  driverID,
		VehicleID: vehicleID,
		Status:    model.AppointmentStatusActive,
	}

	if err := s.appointmentStore.Create(ctx, appointment); err != nil {
		// Бронь уже наша, но запись не сохранилась: возвращаем слот,
		// иначе он останется занятым без активной записи.
		if relErr := s.slotStore.Release(ctx, slotID); relErr != nil {
			s.logger.Error("Failed to release slot after create failure",
				zap.Int64("slot_id", slotID),
				zap.Error(relErr),
			)
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info("Appointment created",
		zap.Int64("appointment_id", appointment.ID),
		zap.Int64("driver_id", driverID),
		zap.Int64("vehicle_id", vehicleID),
		zap.Int64("slot_id", slotID),
	)

	slot.Status = model.SlotStatusBusy
	appointment.Slot = slot
	appointment.Driver = driver

	return appointment, nil
}

// CancelAppointment отменяет активную запись. Статус отмены зависит от
// инициатора. Повторная отмена отклоняется: из терминального статуса
// переходов нет.
func (s *AppointmentService) CancelAppointment(ctx context.Context, appointmentID int64, actor model.CancelActor) (*model.Appointment, error) {
	appointment, err := s.appointmentStore.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return nil, model.ErrAppointmentNotFound
	}

	newStatus, effects, err := model.PlanCancellation(appointment.Status, actor)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.appointmentStore.CancelFromActive(ctx, appointmentID, newStatus)
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	if !cancelled {
		// Запись успели отменить между чтением и обновлением
		return nil, model.ErrAlreadyCancelled
	}
	appointment.Status = newStatus

	for _, effect := range effects {
		switch effect {
		case model.EffectReleaseSlot:
			if err := s.slotStore.Release(ctx, appointment.SlotID); err != nil {
				return nil, fmt.Errorf("release slot: %w", err)
			}
		case model.EffectNotifyDriver:
			// Статус и слот уже зафиксированы: доставка уведомления
			// выполняется после, её неудача отмену не откатывает.
			s.notifyCancellation(ctx, appointment)
		}
	}

	s.logger.Info("Appointment cancelled",
		zap.Int64("appointment_id", appointmentID),
		zap.String("status", string(newStatus)),
		zap.String("actor", string(actor)),
	)

	return appointment, nil
}

// notifyCancellation пишет уведомление в журнал и пытается доставить его
// водителю. Обе неудачи только логируются.
func (s *AppointmentService) notifyCancellation(ctx context.Context, appointment *model.Appointment) {
	slot, err := s.slotStore.GetByID(ctx, appointment.SlotID)
	if err != nil || slot == nil {
		s.logger.Error("Failed to load slot for notification",
			zap.Int64("slot_id", appointment.SlotID),
			zap.Error(err),
		)
		return
	}

	driver, err := s.driverStore.GetByID(ctx, appointment.DriverID)
	if err != nil || driver == nil {
		s.logger.Error("Failed to load driver for notification",
			zap.Int64("driver_id", appointment.DriverID),
			zap.Error(err),
		)
		return
	}

	text := fmt.Sprintf("Ваша запись на %s %s отменена", slot.Date(), slot.Time())

	// Журнальная запись создаётся всегда, до попытки доставки
	notification := &model.Notification{
		DriverID: driver.ID,
		Text:     text,
	}
	if err := s.notificationStore.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to store notification",
			zap.Int64("driver_id", driver.ID),
			zap.Error(err),
		)
	}

	if err := s.notifier.Notify(ctx, driver, text); err != nil {
		s.logger.Warn("Failed to deliver notification",
			zap.Int64("driver_id", driver.ID),
			zap.Error(err),
		)
	}
}

// NotificationsForDriver получает журнал уведомлений водителя, новые первыми
func (s *AppointmentService) NotificationsForDriver(ctx context.Context, driverID int64) ([]*model.Notification, error) {
	driver, err := s.driverStore.GetByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}
	if driver == nil {
		return nil, model.ErrDriverNotFound
	}

	notifications, err := s.notificationStore.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

// GetAppointment получает запись по ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.appointmentStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	if appointment == nil {
		return nil, model.ErrAppointmentNotFound
	}

	return appointment, nil
}

// ActiveAppointmentsForDriver получает активные записи водителя,
// упорядоченные по дате и времени слота.
func (s *AppointmentService) ActiveAppointmentsForDriver(ctx context.Context, driverID int64) ([]*model.ActiveAppointment, error) {
	driver, err := s.driverStore.GetByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}
	if driver == nil {
		return nil, model.ErrDriverNotFound
	}

	appointments, err := s.appointmentStore.ActiveByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("active appointments: %w", err)
	}

	return appointments, nil
}
