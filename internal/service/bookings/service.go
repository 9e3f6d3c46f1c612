package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
)

// Service чтение бронирований для календаря салона и мастера
type Service struct {
	bookingRepo BookingRepository
	loc         *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookingRepo: bookingRepo,
		loc:         loc,
		logger:      logger,
	}
}

// Location часовой пояс салона
func (s *Service) Location() *time.Location {
	return s.loc
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}
	return booking, nil
}

// ListSalonDay бронирования салона за календарный день, опционально одного мастера
func (s *Service) ListSalonDay(ctx context.Context, req *models.SalonDayRequest) ([]*domain.Booking, error) {
	s.logger.Info("ListSalonDay: salon=%d, date=%s, staff=%v, statuses=%v",
		req.SalonID, req.Date.Format(domain.DateFormat), req.StaffID, req.Statuses)

	if req.SalonID <= 0 {
		return nil, domain.NewValidationError("salonId", "must be positive")
	}

	from, to := domain.DayRange(domain.StartOfDay(req.Date.In(s.loc)))
	return s.list(ctx, "ListSalonDay", domain.BookingFilter{
		SalonID:  req.SalonID,
		StaffID:  req.StaffID,
		From:     from,
		To:       to,
		Statuses: req.Statuses,
	})
}

// ListStaffRange календарь мастера за несколько дней
func (s *Service) ListStaffRange(ctx context.Context, req *models.StaffRangeRequest) ([]*domain.Booking, error) {
	from := domain.StartOfDay(req.From.In(s.loc))
	lastDay := domain.StartOfDay(req.To.In(s.loc))

	s.logger.Info("ListStaffRange: staff=%d, %s..%s", req.StaffID,
		from.Format(domain.DateFormat), lastDay.Format(domain.DateFormat))

	if req.StaffID <= 0 {
		return nil, domain.NewValidationError("staffId", "must be positive")
	}
	if lastDay.Before(from) {
		return nil, domain.NewValidationError("to", "must not be before from")
	}
	if lastDay.After(from.AddDate(0, 0, maxRangeDays)) {
		return nil, domain.NewValidationError("to", fmt.Sprintf("range is limited to %d days", maxRangeDays))
	}

	_, to := domain.DayRange(lastDay)
	staffID := req.StaffID
	return s.list(ctx, "ListStaffRange", domain.BookingFilter{
		StaffID:  &staffID,
		From:     from,
		To:       to,
		Statuses: req.Statuses,
	})
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingFilter) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	s.logger.Info("%s: fetched %d bookings", op, len(bookings))
	return bookings, nil
}
