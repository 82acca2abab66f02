package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/service"
)

type createDriverRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	VehicleID int64  `json:"vehicle_id"`
	ChatID    *int64 `json:"chat_id"`
}

func (s *Server) createDriver(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
		return
	}

	driver := &model.Driver{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		VehicleID: req.VehicleID,
		ChatID:    req.ChatID,
	}

	if err := s.registry.CreateDriver(r.Context(), driver); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, driver)
}

func (s *Server) getDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	driver, err := s.registry.GetDriver(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, driver)
}

// getDriverByPhone ищет водителя по номеру в любом формате:
// сравниваются только цифры
func (s *Server) getDriverByPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")

	driver, err := s.registry.GetDriverByPhone(r.Context(), phone)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, driver)
}

// listDriverNotifications отдаёт журнал уведомлений водителя
func (s *Server) listDriverNotifications(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	notifications, err := s.appointments.NotificationsForDriver(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if notifications == nil {
		notifications = []*model.Notification{}
	}

	s.writeJSON(w, http.StatusOK, notifications)
}

type updateDriverRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	ChatID    *int64  `json:"chat_id"`
}

func (s *Server) updateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req updateDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
		return
	}

	driver, err := s.registry.UpdateDriver(r.Context(), id, service.DriverUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		ChatID:    req.ChatID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, driver)
}
