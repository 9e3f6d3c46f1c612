package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Уровни настроек
const (
	LevelStaff   = "staff"
	LevelSalon   = "salon"
	LevelDefault = "default"
)

// UpsertSettingsRequest запрос на сохранение настроек.
// StaffID == nil - настройки всего салона. Незаданные поля наследуются от действующих настроек
type UpsertSettingsRequest struct {
	SalonID                 int64  `json:"salonId"`
	StaffID                 *int64 `json:"staffId,omitempty"`
	SlotGranularityMinutes  *int   `json:"slotGranularityMinutes,omitempty"`
	MinBookingNoticeMinutes *int   `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int   `json:"advanceBookingDays,omitempty"`
}

// ApplyTo применяет заданные поля к настройкам
func (r *UpsertSettingsRequest) ApplyTo(s *domain.SchedulingSettings) {
	if r.SlotGranularityMinutes != nil {
		s.SlotGranularityMinutes = *r.SlotGranularityMinutes
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
}

// SettingsResponse действующие настройки и уровень, с которого они взяты
type SettingsResponse struct {
	ID                      int64      `json:"id,omitempty"`
	SalonID                 int64      `json:"salonId"`
	StaffID                 *int64     `json:"staffId,omitempty"`
	Level                   string     `json:"level"`
	SlotGranularityMinutes  int        `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(s *domain.SchedulingSettings, level string) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ID:                      s.ID,
		SalonID:                 s.SalonID,
		StaffID:                 s.StaffID,
		Level:                   level,
		SlotGranularityMinutes:  s.SlotGranularityMinutes,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
