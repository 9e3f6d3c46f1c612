package get_salon_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/settings"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidStaffID = "некорректный ID мастера"
	msgStaffNotFound  = "мастер не найден в салоне"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/settings
// Query params: staffId (опционально).
// Если ни мастер, ни салон не настроены, возвращаются значения по умолчанию (level=default)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	staffID, err := handlers.ParseOptionalID(r.URL.Query().Get("staffId"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/settings - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.Get(r.Context(), salonID, staffID)
	if err != nil {
		if errors.Is(err, settings.ErrStaffNotFound) {
			h.logger.Warn("GET /salons/{id}/settings - Staff not found: salon_id=%d, staff_id=%v", salonID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)
			return
		}
		h.logger.Error("GET /salons/{id}/settings - Failed to get settings: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/settings - Settings retrieved: salon_id=%d, level=%s", salonID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
