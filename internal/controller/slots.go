package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
)

type slotResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

func toSlotResponse(slot *model.Slot) slotResponse {
	return slotResponse{
		ID:     slot.ID,
		Date:   slot.Date(),
		Time:   slot.Time(),
		Status: string(slot.Status),
	}
}

// listFreeSlots отдаёт свободные слоты, опционально на конкретную дату
func (s *Server) listFreeSlots(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: date must be YYYY-MM-DD", model.ErrValidation))
			return
		}
		date = &parsed
	}

	slots, err := s.slots.ListFree(r.Context(), date)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		resp = append(resp, toSlotResponse(slot))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// listFreeDates отдаёт даты со свободными слотами в пределах горизонта
func (s *Server) listFreeDates(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, fmt.Errorf("%w: days must be a non-negative number", model.ErrValidation))
			return
		}
		days = parsed
	}

	dates, err := s.slots.FreeDates(r.Context(), days)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]string, 0, len(dates))
	for _, d := range dates {
		resp = append(resp, d.Format("2006-01-02"))
	}

	s.writeJSON(w, http.StatusOK, resp)
}
