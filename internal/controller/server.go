package controller

import (
	"net/http"

	"github.com/Alexander2203/my-project-fleetcare/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server HTTP-контроллер поверх сервисов
type Server struct {
	router       *mux.Router
	registry     *service.RegistryService
	slots        *service.SlotService
	appointments *service.AppointmentService
	logger       *zap.Logger
}

func NewServer(
	registry *service.RegistryService,
	slots *service.SlotService,
	appointments *service.AppointmentService,
	logger *zap.Logger,
) *Server {
	r := mux.NewRouter()
	r = r.PathPrefix("/api").Subrouter()

	s := &Server{
		router:       r,
		registry:     registry,
		slots:        slots,
		appointments: appointments,
		logger:       logger,
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	// Автомобили
	s.router.HandleFunc("/vehicles", s.createVehicle).Methods(http.MethodPost)
	s.router.HandleFunc("/vehicles/{id}", s.getVehicle).Methods(http.MethodGet)
	s.router.HandleFunc("/vehicles/{id}", s.updateVehicle).Methods(http.MethodPatch)

	// Водители
	s.router.HandleFunc("/drivers", s.createDriver).Methods(http.MethodPost)
	s.router.HandleFunc("/drivers/by_phone", s.getDriverByPhone).Methods(http.MethodGet)
	s.router.HandleFunc("/drivers/{id}", s.getDriver).Methods(http.MethodGet)
	s.router.HandleFunc("/drivers/{id}", s.updateDriver).Methods(http.MethodPatch)
	s.router.HandleFunc("/drivers/{id}/notifications", s.listDriverNotifications).Methods(http.MethodGet)

	// Слоты
	s.router.HandleFunc("/slots", s.listFreeSlots).Methods(http.MethodGet)
	s.router.HandleFunc("/slots/free_dates", s.listFreeDates).Methods(http.MethodGet)

	// Записи на ТО
	s.router.HandleFunc("/appointments", s.createAppointment).Methods(http.MethodPost)
	s.router.HandleFunc("/appointments/active_by_phone", s.activeByPhone).Methods(http.MethodGet)
	s.router.HandleFunc("/appointments/{id}", s.getAppointment).Methods(http.MethodGet)
	s.router.HandleFunc("/appointments/{id}/cancel_user", s.cancelByUser).Methods(http.MethodPost)
	s.router.HandleFunc("/appointments/{id}/cancel_manager", s.cancelByManager).Methods(http.MethodPost)
}

// Handler собирает итоговый обработчик с middleware
func (s *Server) Handler() http.Handler {
	return handlers.RecoveryHandler()(s.requestLogging(s.router))
}
