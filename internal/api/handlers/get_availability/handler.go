package get_availability

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
)

const (
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidServiceIDs  = "некорректный список услуг, ожидается serviceIds=1,2"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGranularity = "некорректный шаг слотов"
)

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

// Handle GET /api/v1/staff/{staffId}/availability
// Query params: salonId, serviceIds (через запятую), date (YYYY-MM-DD) - обязательные;
// granularity, details=true - опциональные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathID(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	salonID, err := handlers.ParseID(query.Get("salonId"))
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceIDs, err := handlers.ParseIDList(query.Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.ParseDate(dateStr, h.service.Location())
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	granularity := 0
	if raw := query.Get("granularity"); raw != "" {
		granularity, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /staff/{id}/availability - Invalid granularity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
	}

	req := ToServiceRequest(salonID, staffID, serviceIDs, date, granularity, query.Get("details") == "true")

	result, err := h.service.ResolveSlots(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /staff/{id}/availability - Rejected: staff_id=%d, error=%v", staffID, err)
			return
		}
		h.logger.Error("GET /staff/{id}/availability - Failed to resolve slots: staff_id=%d, salon_id=%d, error=%v",
			staffID, salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/{id}/availability - Slots resolved: staff_id=%d, date=%s, available=%d, reason=%q",
		staffID, dateStr, result.AvailableCount(), result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result, h.service.Location()))
}
