package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return domain.NewValidationError("salonId", "must be positive")
	}
	if req.StaffID <= 0 {
		return domain.NewValidationError("staffId", "must be positive")
	}
	if req.CustomerID <= 0 {
		return domain.NewValidationError("customerId", "must be positive")
	}
	if err := domain.ValidateServiceIDs(req.ServiceIDs); err != nil {
		return err
	}
	if req.Date.IsZero() {
		return domain.NewValidationError("date", "is required")
	}
	if err := req.StartTime.Validate(); err != nil {
		return domain.NewValidationError("startTime", "must be HH:MM")
	}
	switch req.Status {
	case "", domain.StatusPending, domain.StatusConfirmed:
	default:
		return domain.NewValidationError("status", "must be pending or confirmed")
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.NewValidationError("notes", "is too long")
	}
	return nil
}

// validateTiming проверяет прошедшее время, минимальное время до записи и горизонт записи
func validateTiming(start, now time.Time, settings *domain.SchedulingSettings) error {
	if start.Before(now) {
		return ErrInvalidDate
	}

	notice := time.Duration(settings.MinBookingNoticeMinutes) * time.Minute
	if start.Before(now.Add(notice)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, settings.MinBookingNoticeMinutes)
	}

	if settings.HasAdvanceBookingLimit() {
		maxDate := domain.StartOfDay(now).AddDate(0, 0, settings.AdvanceBookingDays)
		if domain.StartOfDay(start).After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
		}
	}

	return nil
}
