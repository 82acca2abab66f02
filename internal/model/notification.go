package model

import "time"

// Notification журнальная запись об уведомлении. Создаётся всегда,
// независимо от того, удалась ли доставка во внешний канал.
type Notification struct {
	ID        int64     `json:"id"`
	DriverID  int64     `json:"driver_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
