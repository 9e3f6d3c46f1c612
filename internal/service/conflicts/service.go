package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Service проверка пересечений бронирований одного мастера.
// Внутри транзакции прочитанные бронирования блокируются, поэтому проверка и
// последующая запись выполняются атомарно
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса проверки конфликтов
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CheckConflict возвращает первое активное бронирование мастера, пересекающееся с [start, end),
// или nil. excludeBookingID исключает переносимое бронирование из проверки
func (s *Service) CheckConflict(ctx context.Context, staffID int64, start, end time.Time, excludeBookingID *int64) (*domain.Booking, error) {
	if !start.Before(end) {
		return nil, domain.NewValidationError("end", "must be after start")
	}

	existing, err := s.ListActive(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	for _, b := range existing {
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if domain.Overlaps(start, end, b.StartAt, b.EndAt) {
			return b, nil
		}
	}

	return nil, nil
}

// Ensure возвращает *domain.ConflictError, если интервал занят
func (s *Service) Ensure(ctx context.Context, staffID int64, start, end time.Time, excludeBookingID *int64) error {
	conflict, err := s.CheckConflict(ctx, staffID, start, end, excludeBookingID)
	if err != nil {
		return err
	}
	if conflict != nil {
		s.logger.Warn("Ensure: staff=%d %s-%s overlaps booking id=%d",
			staffID, start.Format(time.RFC3339), end.Format(time.RFC3339), conflict.ID)
		return &domain.ConflictError{
			StaffID:  staffID,
			Start:    start,
			End:      end,
			Existing: conflict,
		}
	}
	return nil
}

// FirstFree возвращает первого мастера из candidates (в переданном порядке), которого
// принимает fit и у которого нет пересечений с [start, end), где end вычисляет fit.
// Если таких нет, возвращает domain.ErrNoStaffAvailable
func (s *Service) FirstFree(ctx context.Context, candidates []int64, start time.Time, fit FitFunc) (int64, time.Time, error) {
	for _, staffID := range candidates {
		end, ok, err := fit(ctx, staffID)
		if err != nil {
			return 0, time.Time{}, err
		}
		if !ok {
			continue
		}

		conflict, err := s.CheckConflict(ctx, staffID, start, end, nil)
		if err != nil {
			return 0, time.Time{}, err
		}
		if conflict == nil {
			return staffID, end, nil
		}
	}

	return 0, time.Time{}, domain.ErrNoStaffAvailable
}

// ListActive возвращает активные бронирования мастера за календарные дни, которые затрагивает [start, end)
func (s *Service) ListActive(ctx context.Context, staffID int64, start, end time.Time) ([]*domain.Booking, error) {
	from, _ := domain.DayRange(start)
	_, to := domain.DayRange(end.Add(-time.Nanosecond))

	bookings, err := s.bookingRepo.ListActiveByStaff(ctx, staffID, from, to)
	if err != nil {
		s.logger.Error("ListActive: failed to list bookings for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListActive - %w", ErrInternal, err)
	}
	return bookings, nil
}
