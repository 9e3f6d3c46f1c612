package update_salon_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/settings"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "настройки не найдены"
	msgStaffNotFound      = "мастер не найден в салоне"
	msgInvalidData        = "некорректные значения настроек"
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

// Handle PUT /api/v1/salons/{salonId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req UpdateSalonSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(salonID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrStaffNotFound):
			h.logger.Warn("PUT /salons/{id}/settings - Staff not found: salon_id=%d, staff_id=%v", salonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/settings - Invalid data: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /salons/{id}/settings - Failed to save settings: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/settings - Settings saved: salon_id=%d, settings_id=%d, level=%s",
		salonID, result.ID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/salons/{salonId}/settings?staffId=
// После удаления действуют настройки уровнем выше
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	staffID, err := handlers.ParseOptionalID(r.URL.Query().Get("staffId"))
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/settings - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	if err := h.service.Delete(r.Context(), salonID, staffID); err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			h.logger.Warn("DELETE /salons/{id}/settings - Not found: salon_id=%d, staff_id=%v", salonID, staffID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /salons/{id}/settings - Failed: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /salons/{id}/settings - Settings deleted: salon_id=%d, staff_id=%v", salonID, staffID)
	w.WriteHeader(http.StatusNoContent)
}
