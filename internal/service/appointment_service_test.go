package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	drivers       *fakeDriverStore
	vehicles      *fakeVehicleStore
	slots         *fakeSlotStore
	appointments  *fakeAppointmentStore
	notifications *fakeNotificationStore
	notifier      *recordingNotifier
	service       *service.AppointmentService

	driver *model.Driver
	slot   *model.Slot
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		drivers:       newFakeDriverStore(),
		vehicles:      newFakeVehicleStore(),
		slots:         newFakeSlotStore(),
		notifications: &fakeNotificationStore{},
		notifier:      &recordingNotifier{},
	}
	env.appointments = newFakeAppointmentStore(env.slots, env.vehicles)
	env.service = service.NewAppointmentService(
		env.drivers,
		env.slots,
		env.appointments,
		env.notifications,
		env.notifier,
		zap.NewNop(),
	)

	vehicle := &model.Vehicle{
		PlateNumber:        "А123ВС77",
		Make:               "LADA",
		Model:              "Vesta",
		LastServiceMileage: 45000,
		ServiceIntervalKm:  10000,
	}
	require.NoError(t, env.vehicles.Create(context.Background(), vehicle))

	chatID := int64(100500)
	env.driver = &model.Driver{
		FirstName: "Иван",
		LastName:  "Петров",
		Phone:     "+7 (911) 123-45-67",
		VehicleID: vehicle.ID,
		ChatID:    &chatID,
	}
	require.NoError(t, env.drivers.Create(context.Background(), env.driver))

	env.slot = env.slots.add(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), model.SlotStatusFree)

	return env
}

func TestCreateAppointment(t *testing.T) {
	env := newTestEnv(t)

	appointment, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, env.slot.ID)
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusActive, appointment.Status)
	assert.Equal(t, env.driver.VehicleID, appointment.VehicleID)
	assert.Equal(t, env.slot.ID, appointment.SlotID)
	assert.NotZero(t, appointment.ID)

	// Слот занят ровно после создания записи
	assert.Equal(t, model.SlotStatusBusy, env.slots.status(env.slot.ID))
}

func TestCreateAppointment_DriverNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateAppointment(context.Background(), 9000, 0, env.slot.ID)
	require.ErrorIs(t, err, model.ErrDriverNotFound)
}

func TestCreateAppointment_SlotNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, 9000)
	require.ErrorIs(t, err, model.ErrSlotNotFound)
}

func TestCreateAppointment_VehicleDriverMismatch(t *testing.T) {
	env := newTestEnv(t)

	other := &model.Vehicle{PlateNumber: "В777ОР99", Make: "ГАЗ", Model: "Соболь", ServiceIntervalKm: 15000}
	require.NoError(t, env.vehicles.Create(context.Background(), other))

	_, err := env.service.CreateAppointment(context.Background(), env.driver.ID, other.ID, env.slot.ID)
	require.ErrorIs(t, err, model.ErrVehicleDriverMismatch)

	// Проверка выполняется до любых изменений слота
	assert.Equal(t, model.SlotStatusFree, env.slots.status(env.slot.ID))
}

func TestCreateAppointment_SlotUnavailable(t *testing.T) {
	env := newTestEnv(t)

	busy := env.slots.add(time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC), model.SlotStatusBusy)

	_, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, busy.ID)
	require.ErrorIs(t, err, model.ErrSlotUnavailable)
}

func TestCreateAppointment_ReleasesSlotOnPersistFailure(t *testing.T) {
	env := newTestEnv(t)
	env.appointments.failCreate = errStorage

	_, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, env.slot.ID)
	require.ErrorIs(t, err, errStorage)

	// Бронь компенсирована: слот не должен остаться занятым без записи
	assert.Equal(t, model.SlotStatusFree, env.slots.status(env.slot.ID))
}

func TestCreateAppointment_ConcurrentSingleWinner(t *testing.T) {
	env := newTestEnv(t)

	const workers = 32

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, env.slot.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, model.ErrSlotUnavailable):
			lost++
		}
	}

	// Из конкурирующих запросов выигрывает ровно один
	assert.Equal(t, 1, won)
	assert.Equal(t, workers-1, lost)
	assert.Equal(t, model.SlotStatusBusy, env.slots.status(env.slot.ID))
}

func TestCancelAppointment(t *testing.T) {
	tests := []struct {
		name       string
		actor      model.CancelActor
		wantStatus model.AppointmentStatus
	}{
		{"by user", model.CancelActorUser, model.AppointmentStatusCancelledUser},
		{"by manager", model.CancelActorManager, model.AppointmentStatusCancelledManager},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			appointment, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, env.slot.ID)
			require.NoError(t, err)

			cancelled, err := env.service.CancelAppointment(context.Background(), appointment.ID, tt.actor)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, cancelled.Status)
			assert.Equal(t, tt.wantStatus, env.appointments.statusOf(appointment.ID))
			assert.Equal(t, model.SlotStatusFree, env.slots.status(env.slot.ID))

			// Уведомление записано в журнал и доставлено
			records := env.notifications.all()
			require.Len(t, records, 1)
			assert.Equal(t, env.driver.ID, records[0].DriverID)
			assert.Equal(t, "Ваша запись на 2026-09-10 10:00 отменена", records[0].Text)
			assert.Equal(t, []string{records[0].Text}, env.notifier.sent())
		})
	}
}

func TestCancelAppointment_AlreadyCancelled(t *testing.T) {
	env := newTestEnv(t)

	appointment, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, env.slot.ID)
	require.NoError(t, err)

	_, err = env.service.CancelAppointment(context.Background(), appointment.ID, model.CancelActorUser)
	require.NoError(t, err)

	// Повторная отмена отклоняется, а не проходит молча
	_, err = env.service.CancelAppointment(context.Background(), appointment.ID, model.CancelActorManager)
	require.ErrorIs(t, err, model.ErrAlreadyCancelled)

	assert.Len(t, env.notifications.all(), 1)
}

func TestCancelAppointment_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CancelAppointment(context.Background(), 9000, model.CancelActorUser)
	require.ErrorIs(t, err, model.ErrAppointmentNotFound)
}

func TestCancelAppointment_DeliveryFailureDoesNotUndoCancel(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.fail = errStorage

	appointment, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, env.slot.ID)
	require.NoError(t, err)

	cancelled, err := env.service.CancelAppointment(context.Background(), appointment.ID, model.CancelActorUser)
	require.NoError(t, err)

	// Отмена зафиксирована, журнальная запись создана, хотя доставка упала
	assert.Equal(t, model.AppointmentStatusCancelledUser, cancelled.Status)
	assert.Equal(t, model.SlotStatusFree, env.slots.status(env.slot.ID))
	assert.Len(t, env.notifications.all(), 1)
	assert.Empty(t, env.notifier.sent())
}

func TestActiveAppointmentsForDriver(t *testing.T) {
	env := newTestEnv(t)

	later := env.slots.add(time.Date(2026, 9, 12, 9, 30, 0, 0, time.UTC), model.SlotStatusFree)

	// Бронируем сначала поздний слот, потом ранний
	second, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, later.ID)
	require.NoError(t, err)
	first, err := env.service.CreateAppointment(context.Background(), env.driver.ID, 0, env.slot.ID)
	require.NoError(t, err)

	items, err := env.service.ActiveAppointmentsForDriver(context.Background(), env.driver.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Упорядочено по дате и времени слота, не по времени создания
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, "2026-09-10", items[0].Date)
	assert.Equal(t, "10:00", items[0].Time)
	assert.Equal(t, "А123ВС77", items[0].CarPlate)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, "2026-09-12", items[1].Date)

	// Отменённая запись пропадает из списка
	_, err = env.service.CancelAppointment(context.Background(), first.ID, model.CancelActorManager)
	require.NoError(t, err)

	items, err = env.service.ActiveAppointmentsForDriver(context.Background(), env.driver.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestActiveAppointmentsForDriver_DriverNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ActiveAppointmentsForDriver(context.Background(), 9000)
	require.ErrorIs(t, err, model.ErrDriverNotFound)
}
