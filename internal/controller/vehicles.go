package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/Alexander2203/my-project-fleetcare/internal/service"
)

type createVehicleRequest struct {
	PlateNumber        string `json:"plate_number"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	LastServiceMileage int64  `json:"last_service_mileage"`
	ServiceIntervalKm  int64  `json:"service_interval_km"`
}

func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
		return
	}

	vehicle := &model.Vehicle{
		PlateNumber:        req.PlateNumber,
		Make:               req.Make,
		Model:              req.Model,
		LastServiceMileage: req.LastServiceMileage,
		ServiceIntervalKm:  req.ServiceIntervalKm,
	}

	if err := s.registry.CreateVehicle(r.Context(), vehicle); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, vehicle)
}

func (s *Server) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	vehicle, err := s.registry.GetVehicle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, vehicle)
}

type updateVehicleRequest struct {
	LastServiceMileage *int64 `json:"last_service_mileage"`
	ServiceIntervalKm  *int64 `json:"service_interval_km"`
}

func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req updateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid request body", model.ErrValidation))
		return
	}

	vehicle, err := s.registry.UpdateVehicle(r.Context(), id, service.VehicleUpdate{
		LastServiceMileage: req.LastServiceMileage,
		ServiceIntervalKm:  req.ServiceIntervalKm,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, vehicle)
}
