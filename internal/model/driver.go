package model

import "time"

type Driver struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	VehicleID int64     `json:"vehicle_id"` // привязка один к одному, не меняется за время жизни записи
	ChatID    *int64    `json:"chat_id"`    // указатель - может быть nil, если водитель не подключил бота
	CreatedAt time.Time `json:"created_at"`

	// Дополнительное поле для удобства (не из БД)
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}
