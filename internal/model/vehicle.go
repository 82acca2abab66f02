package model

import "time"

type Vehicle struct {
	ID                 int64     `json:"id"`
	PlateNumber        string    `json:"plate_number"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	LastServiceMileage int64     `json:"last_service_mileage"`
	ServiceIntervalKm  int64     `json:"service_interval_km"`
	NextServiceMileage int64     `json:"next_service_mileage"` // всегда last + interval, пересчитывается при каждом сохранении
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RecalcNextService пересчитывает пробег следующего ТО.
// Вызывается перед каждым сохранением, чтобы поле никогда не устаревало.
func (v *Vehicle) RecalcNextService() {
	v.NextServiceMileage = v.LastServiceMileage + v.ServiceIntervalKm
}
