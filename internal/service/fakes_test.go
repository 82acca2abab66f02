package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
)

// Фейковые хранилища в памяти. Контракты повторяют репозитории поверх
// PostgreSQL, включая условные обновления статусов.

type fakeDriverStore struct {
	mu     sync.Mutex
	m      map[int64]*model.Driver
	nextID int64
}

func newFakeDriverStore() *fakeDriverStore {
	return &fakeDriverStore{m: make(map[int64]*model.Driver)}
}

func (s *fakeDriverStore) Create(_ context.Context, driver *model.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	driver.ID = s.nextID
	driver.CreatedAt = time.Now()
	cp := *driver
	s.m[driver.ID] = &cp
	return nil
}

func (s *fakeDriverStore) GetByID(_ context.Context, id int64) (*model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	driver, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	cp := *driver
	return &cp, nil
}

func (s *fakeDriverStore) List(_ context.Context) ([]*model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	drivers := make([]*model.Driver, 0, len(ids))
	for _, id := range ids {
		cp := *s.m[id]
		drivers = append(drivers, &cp)
	}
	return drivers, nil
}

func (s *fakeDriverStore) Update(_ context.Context, driver *model.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[driver.ID]; !ok {
		return model.ErrDriverNotFound
	}
	cp := *driver
	s.m[driver.ID] = &cp
	return nil
}

type fakeVehicleStore struct {
	mu     sync.Mutex
	m      map[int64]*model.Vehicle
	nextID int64
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{m: make(map[int64]*model.Vehicle)}
}

func (s *fakeVehicleStore) Create(_ context.Context, vehicle *model.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Как и репозиторий, хранилище пересчитывает пробег при каждом сохранении
	vehicle.RecalcNextService()
	s.nextID++
	vehicle.ID = s.nextID
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	cp := *vehicle
	s.m[vehicle.ID] = &cp
	return nil
}

func (s *fakeVehicleStore) GetByID(_ context.Context, id int64) (*model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicle, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	cp := *vehicle
	return &cp, nil
}

func (s *fakeVehicleStore) Update(_ context.Context, vehicle *model.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[vehicle.ID]; !ok {
		return model.ErrVehicleNotFound
	}
	vehicle.RecalcNextService()
	vehicle.UpdatedAt = time.Now()
	cp := *vehicle
	s.m[vehicle.ID] = &cp
	return nil
}

type fakeSlotStore struct {
	mu     sync.Mutex
	m      map[int64]*model.Slot
	nextID int64
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{m: make(map[int64]*model.Slot)}
}

func (s *fakeSlotStore) add(startAt time.Time, status model.SlotStatus) *model.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	slot := &model.Slot{
		ID:        s.nextID,
		StartAt:   startAt,
		Status:    status,
		CreatedAt: time.Now(),
	}
	s.m[slot.ID] = slot
	cp := *slot
	return &cp
}

func (s *fakeSlotStore) GetByID(_ context.Context, id int64) (*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (s *fakeSlotStore) ListFree(_ context.Context, date *time.Time) ([]*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var slots []*model.Slot
	for _, slot := range s.m {
		if slot.Status != model.SlotStatusFree {
			continue
		}
		if date != nil && slot.StartAt.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		cp := *slot
		slots = append(slots, &cp)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartAt.Before(slots[j].StartAt) })
	return slots, nil
}

func (s *fakeSlotStore) FreeDates(_ context.Context, from, to time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]time.Time)
	fromDate := from.Format("2006-01-02")
	toDate := to.Format("2006-01-02")
	for _, slot := range s.m {
		if slot.Status != model.SlotStatusFree {
			continue
		}
		d := slot.StartAt.Format("2006-01-02")
		if d < fromDate || d > toDate {
			continue
		}
		if _, ok := seen[d]; !ok {
			day, _ := time.Parse("2006-01-02", d)
			seen[d] = day
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	dates := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, seen[k])
	}
	return dates, nil
}

// TryReserve повторяет контракт условного UPDATE: проверка и смена
// статуса выполняются под одной блокировкой.
func (s *fakeSlotStore) TryReserve(_ context.Context, slotID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.m[slotID]
	if !ok || slot.Status != model.SlotStatusFree {
		return false, nil
	}
	slot.Status = model.SlotStatusBusy
	return true, nil
}

func (s *fakeSlotStore) Release(_ context.Context, slotID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.m[slotID]
	if !ok {
		return model.ErrSlotNotFound
	}
	slot.Status = model.SlotStatusFree
	return nil
}

func (s *fakeSlotStore) status(id int64) model.SlotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[id].Status
}

type fakeAppointmentStore struct {
	mu         sync.Mutex
	m          map[int64]*model.Appointment
	nextID     int64
	slots      *fakeSlotStore
	vehicles   *fakeVehicleStore
	failCreate error
}

func newFakeAppointmentStore(slots *fakeSlotStore, vehicles *fakeVehicleStore) *fakeAppointmentStore {
	return &fakeAppointmentStore{
		m:        make(map[int64]*model.Appointment),
		slots:    slots,
		vehicles: vehicles,
	}
}

func (s *fakeAppointmentStore) Create(_ context.Context, appointment *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	s.nextID++
	appointment.ID = s.nextID
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	cp := *appointment
	cp.Slot = nil
	cp.Driver = nil
	s.m[appointment.ID] = &cp
	return nil
}

func (s *fakeAppointmentStore) GetByID(_ context.Context, id int64) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointment, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	cp := *appointment
	return &cp, nil
}

func (s *fakeAppointmentStore) CancelFromActive(_ context.Context, id int64, status model.AppointmentStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointment, ok := s.m[id]
	if !ok || appointment.Status != model.AppointmentStatusActive {
		return false, nil
	}
	appointment.Status = status
	appointment.UpdatedAt = time.Now()
	return true, nil
}

func (s *fakeAppointmentStore) ActiveByDriver(ctx context.Context, driverID int64) ([]*model.ActiveAppointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []*model.ActiveAppointment
	for _, appointment := range s.m {
		if appointment.DriverID != driverID || appointment.Status != model.AppointmentStatusActive {
			continue
		}
		slot := s.slots.m[appointment.SlotID]
		vehicle := s.vehicles.m[appointment.VehicleID]
		items = append(items, &model.ActiveAppointment{
			ID:       appointment.ID,
			StartAt:  slot.StartAt,
			Date:     slot.StartAt.Format("2006-01-02"),
			Time:     slot.StartAt.Format("15:04"),
			CarPlate: vehicle.PlateNumber,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartAt.Before(items[j].StartAt) })
	return items, nil
}

func (s *fakeAppointmentStore) statusOf(id int64) model.AppointmentStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[id].Status
}

type fakeNotificationStore struct {
	mu   sync.Mutex
	list []*model.Notification
	fail error
}

func (s *fakeNotificationStore) Create(_ context.Context, notification *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	notification.ID = int64(len(s.list) + 1)
	notification.CreatedAt = time.Now()
	cp := *notification
	s.list = append(s.list, &cp)
	return nil
}

func (s *fakeNotificationStore) ListByDriver(_ context.Context, driverID int64) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var notifications []*model.Notification
	for i := len(s.list) - 1; i >= 0; i-- {
		if s.list[i].DriverID == driverID {
			notifications = append(notifications, s.list[i])
		}
	}
	return notifications, nil
}

func (s *fakeNotificationStore) all() []*model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Notification(nil), s.list...)
}

// recordingNotifier запоминает доставленные сообщения вместо внешнего канала
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	fail     error
}

func (n *recordingNotifier) Notify(_ context.Context, _ *model.Driver, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.messages = append(n.messages, text)
	return nil
}

func (n *recordingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

var errStorage = errors.New("storage unavailable")
