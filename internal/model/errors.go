package model

import "errors"

// Доменные ошибки. Слой HTTP переводит их в коды ответов через errors.Is.
var (
	ErrDriverNotFound        = errors.New("driver not found")
	ErrVehicleNotFound       = errors.New("vehicle not found")
	ErrSlotNotFound          = errors.New("slot not found")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrSlotUnavailable       = errors.New("slot is not available")
	ErrVehicleDriverMismatch = errors.New("vehicle is not assigned to this driver")
	ErrAlreadyCancelled      = errors.New("appointment is already cancelled")
	ErrValidation            = errors.New("validation error")
)
