package get_available_staff

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/availability"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
)

// StaffResponse мастера, свободные в указанное время
type StaffResponse struct {
	SalonID   int64   `json:"salonId"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	StaffIDs  []int64 `json:"staffIds"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-staff
// Query params: serviceId, date (YYYY-MM-DD), time (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-staff - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	query := r.URL.Query()

	serviceID, err := handlers.ParseID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-staff - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := handlers.ParseDate(query.Get("date"), h.service.Location())
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-staff - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-staff - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	staffIDs, err := h.service.AvailableStaff(r.Context(), &availability.StaffRequest{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
		Time:      startTime,
	})
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /salons/{id}/available-staff - Rejected: salon_id=%d, error=%v", salonID, err)
			return
		}
		h.logger.Error("GET /salons/{id}/available-staff - Failed: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}
	if staffIDs == nil {
		staffIDs = []int64{}
	}

	h.logger.Info("GET /salons/{id}/available-staff - salon_id=%d, service_id=%d, %s %s: %d staff",
		salonID, serviceID, query.Get("date"), startTime, len(staffIDs))
	handlers.RespondJSON(w, http.StatusOK, StaffResponse{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      query.Get("date"),
		Time:      startTime.String(),
		StaffIDs:  staffIDs,
	})
}
