package update_salon_settings

import (
	"github.com/m04kA/SMC-SalonScheduler/internal/service/settings/models"
)

// UpdateSalonSettingsRequest HTTP request model; незаданные поля наследуются
type UpdateSalonSettingsRequest struct {
	StaffID                 *int64 `json:"staffId,omitempty"`
	SlotGranularityMinutes  *int   `json:"slotGranularityMinutes,omitempty"`
	MinBookingNoticeMinutes *int   `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int   `json:"advanceBookingDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSalonSettingsRequest) ToServiceRequest(salonID int64) *models.UpsertSettingsRequest {
	return &models.UpsertSettingsRequest{
		SalonID:                 salonID,
		StaffID:                 r.StaffID,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}
