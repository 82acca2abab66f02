package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError переводит доменную ошибку в код ответа
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrDriverNotFound),
		errors.Is(err, model.ErrVehicleNotFound),
		errors.Is(err, model.ErrSlotNotFound),
		errors.Is(err, model.ErrAppointmentNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
	case errors.Is(err, model.ErrSlotUnavailable),
		errors.Is(err, model.ErrAlreadyCancelled):
		s.writeJSON(w, http.StatusConflict, errorResponse{Detail: err.Error()})
	case errors.Is(err, model.ErrVehicleDriverMismatch),
		errors.Is(err, model.ErrValidation):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		s.logger.Error("Request failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}

// pathID читает числовой идентификатор из пути
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ErrValidation
	}
	return id, nil
}
