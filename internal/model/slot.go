package model

import "time"

type SlotStatus string

const (
	SlotStatusFree SlotStatus = "free"
	SlotStatusBusy SlotStatus = "busy"
)

// Slot слот для записи на ТО. Пара (дата, время) уникальна,
// поэтому храним одно поле StartAt с уникальным индексом.
type Slot struct {
	ID        int64      `json:"id"`
	StartAt   time.Time  `json:"start_at"`
	Status    SlotStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Date возвращает дату слота в формате YYYY-MM-DD.
func (s *Slot) Date() string {
	return s.StartAt.Format("2006-01-02")
}

// Time возвращает время слота в формате HH:MM.
func (s *Slot) Time() string {
	return s.StartAt.Format("15:04")
}
