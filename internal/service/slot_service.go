package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"go.uber.org/zap"
)

// DefaultFreeDatesHorizon горизонт поиска свободных дат по умолчанию, дней.
const DefaultFreeDatesHorizon = 7

// SlotService календарь слотов для записи на ТО
type SlotService struct {
	slotStore SlotStore
	logger    *zap.Logger
	now       Clock
}

func NewSlotService(slotStore SlotStore, logger *zap.Logger) *SlotService {
	return &SlotService{
		slotStore: slotStore,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (s *SlotService) WithClock(clock Clock) *SlotService {
	s.now = clock
	return s
}

// ListFree получает свободные слоты, отсортированные по дате и времени.
// Дата, если задана, ограничивает список одним днём.
func (s *SlotService) ListFree(ctx context.Context, date *time.Time) ([]*model.Slot, error) {
	slots, err := s.slotStore.ListFree(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list free slots: %w", err)
	}
	return slots, nil
}

// FreeDates получает даты с хотя бы одним свободным слотом в пределах
// заданного горизонта от сегодняшнего дня, по возрастанию.
func (s *SlotService) FreeDates(ctx context.Context, horizonDays int) ([]time.Time, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultFreeDatesHorizon
	}

	today := s.now()
	until := today.AddDate(0, 0, horizonDays)

	dates, err := s.slotStore.FreeDates(ctx, today, until)
	if err != nil {
		return nil, fmt.Errorf("free dates: %w", err)
	}

	return dates, nil
}

// GetSlot получает слот по ID
func (s *SlotService) GetSlot(ctx context.Context, id int64) (*model.Slot, error) {
	slot, err := s.slotStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	if slot == nil {
		return nil, model.ErrSlotNotFound
	}

	return slot, nil
}
