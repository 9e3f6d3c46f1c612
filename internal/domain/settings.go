package domain

import "time"

// SchedulingSettings holds slot settings of a salon.
// Supports hierarchical configuration:
// 1. Staff member (salon_id, staff_id)
// 2. Salon-wide (salon_id, NULL)
// 3. Built-in defaults
type SchedulingSettings struct {
	ID                      int64
	SalonID                 int64
	StaffID                 *int64 // NULL = settings for the whole salon
	SlotGranularityMinutes  int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsSalonWide returns true for salon-level settings
func (s *SchedulingSettings) IsSalonWide() bool {
	return s.StaffID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *SchedulingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// DefaultSettings returns the built-in settings for a salon
func DefaultSettings(salonID int64) *SchedulingSettings {
	return &SchedulingSettings{
		SalonID:                 salonID,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
