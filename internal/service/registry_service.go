package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"go.uber.org/zap"
)

// RegistryService справочник автомобилей и водителей
type RegistryService struct {
	driverStore  DriverStore
	vehicleStore VehicleStore
	logger       *zap.Logger
}

func NewRegistryService(driverStore DriverStore, vehicleStore VehicleStore, logger *zap.Logger) *RegistryService {
	return &RegistryService{
		driverStore:  driverStore,
		vehicleStore: vehicleStore,
		logger:       logger,
	}
}

// NormalizePhone оставляет в номере только цифры
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GetDriver получает водителя с привязанным автомобилем
func (s *RegistryService) GetDriver(ctx context.Context, id int64) (*model.Driver, error) {
	driver, err := s.driverStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}

	if driver == nil {
		return nil, model.ErrDriverNotFound
	}

	vehicle, err := s.vehicleStore.GetByID(ctx, driver.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("get driver vehicle: %w", err)
	}
	driver.Vehicle = vehicle

	return driver, nil
}

// phoneMatches сравнивает номера после нормализации. Запрос без кода
// страны ("911-123-45-67") тоже должен находить номер, поэтому более
// короткий номер сравнивается с хвостом длинного.
func phoneMatches(stored, query string) bool {
	if stored == query {
		return true
	}
	if len(query) < len(stored) {
		return strings.HasSuffix(stored, query)
	}
	return strings.HasSuffix(query, stored)
}

// GetDriverByPhone ищет водителя по номеру телефона в любом формате.
// Номера сравниваются после нормализации, перебором по всем водителям:
// при совпадении нескольких номеров побеждает первый.
func (s *RegistryService) GetDriverByPhone(ctx context.Context, phone string) (*model.Driver, error) {
	norm := NormalizePhone(phone)
	if norm == "" {
		return nil, fmt.Errorf("%w: phone required", model.ErrValidation)
	}

	drivers, err := s.driverStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	for _, driver := range drivers {
		if phoneMatches(NormalizePhone(driver.Phone), norm) {
			return s.GetDriver(ctx, driver.ID)
		}
	}

	return nil, model.ErrDriverNotFound
}

// GetVehicle получает автомобиль по ID
func (s *RegistryService) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	vehicle, err := s.vehicleStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}

	if vehicle == nil {
		return nil, model.ErrVehicleNotFound
	}

	return vehicle, nil
}

// CreateVehicle создаёт автомобиль
func (s *RegistryService) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	if vehicle.PlateNumber == "" {
		return fmt.Errorf("%w: plate_number required", model.ErrValidation)
	}
	if vehicle.ServiceIntervalKm <= 0 {
		return fmt.Errorf("%w: service_interval_km must be positive", model.ErrValidation)
	}

	vehicle.RecalcNextService()
	if err := s.vehicleStore.Create(ctx, vehicle); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}

	s.logger.Info("Vehicle created",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.String("plate_number", vehicle.PlateNumber),
	)

	return nil
}

// VehicleUpdate изменяемые поля автомобиля. Nil означает "не менять".
type VehicleUpdate struct {
	LastServiceMileage *int64
	ServiceIntervalKm  *int64
}

// UpdateVehicle обновляет пробеги автомобиля. Пробег следующего ТО
// пересчитывается при каждом сохранении, а не только при явном запросе.
func (s *RegistryService) UpdateVehicle(ctx context.Context, id int64, upd VehicleUpdate) (*model.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.LastServiceMileage != nil {
		vehicle.LastServiceMileage = *upd.LastServiceMileage
	}
	if upd.ServiceIntervalKm != nil {
		if *upd.ServiceIntervalKm <= 0 {
			return nil, fmt.Errorf("%w: service_interval_km must be positive", model.ErrValidation)
		}
		vehicle.ServiceIntervalKm = *upd.ServiceIntervalKm
	}

	vehicle.RecalcNextService()
	if err := s.vehicleStore.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}

	s.logger.Info("Vehicle updated",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.Int64("last_service_mileage", vehicle.LastServiceMileage),
		zap.Int64("next_service_mileage", vehicle.NextServiceMileage),
	)

	return vehicle, nil
}

// CreateDriver создаёт водителя с привязкой к автомобилю
func (s *RegistryService) CreateDriver(ctx context.Context, driver *model.Driver) error {
	if driver.FirstName == "" || driver.LastName == "" {
		return fmt.Errorf("%w: first_name and last_name required", model.ErrValidation)
	}
	if NormalizePhone(driver.Phone) == "" {
		return fmt.Errorf("%w: phone required", model.ErrValidation)
	}

	if _, err := s.GetVehicle(ctx, driver.VehicleID); err != nil {
		return err
	}

	if err := s.driverStore.Create(ctx, driver); err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	s.logger.Info("Driver created",
		zap.Int64("driver_id", driver.ID),
		zap.Int64("vehicle_id", driver.VehicleID),
	)

	return nil
}

// DriverUpdate изменяемые поля водителя. Nil означает "не менять".
// Привязка к автомобилю не меняется за время жизни записи.
type DriverUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	ChatID    *int64
}

// UpdateDriver обновляет данные водителя
func (s *RegistryService) UpdateDriver(ctx context.Context, id int64, upd DriverUpdate) (*model.Driver, error) {
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		driver.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		driver.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		if NormalizePhone(*upd.Phone) == "" {
			return nil, fmt.Errorf("%w: phone required", model.ErrValidation)
		}
		driver.Phone = *upd.Phone
	}
	if upd.ChatID != nil {
		driver.ChatID = upd.ChatID
	}

	if err := s.driverStore.Update(ctx, driver); err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}

	s.logger.Info("Driver updated", zap.Int64("driver_id", driver.ID))

	return driver, nil
}
