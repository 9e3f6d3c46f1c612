package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return domain.NewValidationError("salonId", "is required")
	}
	if req.StaffID <= 0 {
		return domain.NewValidationError("staffId", "is required")
	}
	if err := domain.ValidateServiceIDs(req.ServiceIDs); err != nil {
		return err
	}
	if req.Date.IsZero() {
		return domain.NewValidationError("date", "is required")
	}
	if req.GranularityMinutes != 0 &&
		(req.GranularityMinutes < domain.MinSlotGranularityMinutes || req.GranularityMinutes > domain.MaxSlotGranularityMinutes) {
		return domain.NewValidationError("granularity", "is out of range")
	}
	return nil
}

func validateStaffRequest(req *StaffRequest) error {
	if req.SalonID <= 0 {
		return domain.NewValidationError("salonId", "is required")
	}
	if req.ServiceID <= 0 {
		return domain.NewValidationError("serviceId", "is required")
	}
	if req.Date.IsZero() {
		return domain.NewValidationError("date", "is required")
	}
	if err := req.Time.Validate(); err != nil {
		return domain.NewValidationError("time", "must be HH:MM")
	}
	return nil
}

// validateHorizon отклоняет даты дальше горизонта записи салона
func validateHorizon(date, now time.Time, settings *domain.SchedulingSettings) error {
	if !settings.HasAdvanceBookingLimit() {
		return nil
	}
	limit := domain.StartOfDay(now).AddDate(0, 0, settings.AdvanceBookingDays)
	if date.After(limit) {
		return domain.NewValidationError("date", "is beyond the advance booking horizon")
	}
	return nil
}
