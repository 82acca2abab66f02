package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
)

type createAppointmentRequest struct {
	DriverID  int64 `json:"driver_id"`
	VehicleID int64 `json:"vehicle_id"` // необязателен: по умолчанию автомобиль водителя
	SlotID    int64 `json:"slot_id"`
}

type appointmentResponse struct {
	ID        int64         `json:"id"`
	Slot      *slotResponse `json:"slot,omitempty"`
	SlotID    int64         `json:"slot_id"`
	DriverID  int64         `json:"driver_id"`
	VehicleID int64         `json:"vehicle_id"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func toAppointmentResponse(appointment *model.Appointment) appointmentResponse {
	resp := appointmentResponse{
		ID:        appointment.ID,
		SlotID:    appointment.SlotID,
		DriverID:  appointment.DriverID,
		VehicleID: appointment.VehicleID,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}
	if appointment.Slot != nil {
		slot := toSlotResponse(appointment.Slot)
		resp.Slot = &slot
	}
	return resp
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
		return
	}

	if req.DriverID <= 0 || req.SlotID <= 0 {
		s.writeError(w, fmt.Errorf("%w: driver_id and slot_id required", model.ErrValidation))
		return
	}

	appointment, err := s.appointments.CreateAppointment(r.Context(), req.DriverID, req.VehicleID, req.SlotID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toAppointmentResponse(appointment))
}

func (s *Server) getAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	appointment, err := s.appointments.GetAppointment(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAppointmentResponse(appointment))
}

func (s *Server) cancelByUser(w http.ResponseWriter, r *http.Request) {
	s.cancelAppointment(w, r, model.CancelActorUser)
}

func (s *Server) cancelByManager(w http.ResponseWriter, r *http.Request) {
	s.cancelAppointment(w, r, model.CancelActorManager)
}

func (s *Server) cancelAppointment(w http.ResponseWriter, r *http.Request, actor model.CancelActor) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	appointment, err := s.appointments.CancelAppointment(r.Context(), id, actor)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAppointmentResponse(appointment))
}

// activeByPhone отдаёт активные записи водителя, найденного по телефону
func (s *Server) activeByPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")

	driver, err := s.registry.GetDriverByPhone(r.Context(), phone)
	if err != nil {
		s.writeError(w, err)
		return
	}

	appointments, err := s.appointments.ActiveAppointmentsForDriver(r.Context(), driver.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if appointments == nil {
		appointments = []*model.ActiveAppointment{}
	}

	s.writeJSON(w, http.StatusOK, appointments)
}
