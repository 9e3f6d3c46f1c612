package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/infra/cache/salonhours"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
)

// Причины подстановки окна по умолчанию (метка метрики)
const (
	gapNotConfigured    = "not_configured"
	gapInvalidWindow    = "invalid_window"
	gapSalonUnavailable = "salon_service_unavailable"
)

// EffectiveWindow определяет окно работы мастера на дату:
// окно на дату → еженедельное окно → часы салона → окно по умолчанию 09:00-18:00.
// Окно по умолчанию подставляется молча для клиента, но логируется для операторов
func (s *Service) EffectiveWindow(ctx context.Context, salonID, staffID int64, date time.Time) (*domain.EffectiveWindow, error) {
	date = s.localDay(date)

	// 1. Окно мастера (на дату или на день недели)
	window, source, err := s.scheduleRepo.GetWorkWindow(ctx, staffID, date)
	switch {
	case err == nil:
		if verr := window.Validate(); verr != nil {
			s.logger.Warn("EffectiveWindow: invalid %s window for staff=%d on %s: %v",
				source, staffID, date.Format(domain.DateFormat), verr)
			s.metrics.ConfigGapFallback(gapInvalidWindow)
			break
		}
		return &domain.EffectiveWindow{WorkWindow: *window, Source: source}, nil
	case errors.Is(err, scheduleRepo.ErrWindowNotFound):
		// Переходим к часам салона
	default:
		s.logger.Error("EffectiveWindow: failed to get window for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get work window: %w", ErrInternal, err)
	}

	// 2. Часы работы салона
	if s.salonHours != nil {
		salonWindow, err := s.salonHours.DefaultWindow(ctx, salonID, int(date.Weekday()))
		switch {
		case err == nil:
			salonWindow.StaffID = staffID
			return &domain.EffectiveWindow{WorkWindow: *salonWindow, Source: domain.WindowSourceSalon}, nil
		case errors.Is(err, salonhours.ErrClosed):
			closed := domain.ClosedWindow(staffID, domain.WindowSourceSalon)
			return &closed, nil
		case errors.Is(err, salonhours.ErrUnavailable):
			s.logger.Warn("EffectiveWindow: salon hours unavailable for salon=%d, using default window: %v", salonID, err)
			s.metrics.ConfigGapFallback(gapSalonUnavailable)
			fallback := domain.FallbackWindow(staffID)
			return &fallback, nil
		case !errors.Is(err, salonhours.ErrNotConfigured):
			s.logger.Error("EffectiveWindow: failed to get salon hours for salon=%d: %v", salonID, err)
			return nil, fmt.Errorf("%w: failed to get salon hours: %w", ErrInternal, err)
		}
	}

	// 3. Конфигурации нет: окно по умолчанию
	s.logger.Warn("EffectiveWindow: configuration gap for staff=%d salon=%d on %s, using default window %02d:00-%02d:00",
		staffID, salonID, date.Format(domain.DateFormat), domain.FallbackStartMinute/60, domain.FallbackEndMinute/60)
	s.metrics.ConfigGapFallback(gapNotConfigured)

	fallback := domain.FallbackWindow(staffID)
	return &fallback, nil
}

// WorkingAt проверяет, что [start, end) целиком лежит в окне работы мастера и не задевает перерыв
func (s *Service) WorkingAt(ctx context.Context, salonID, staffID int64, start, end time.Time) (bool, error) {
	day := s.localDay(start)

	window, err := s.EffectiveWindow(ctx, salonID, staffID, day)
	if err != nil {
		return false, err
	}
	if window.Closed {
		return false, nil
	}

	return window.Accepts(day, start.In(s.loc), end.In(s.loc)), nil
}

// CanServe проверяет окно работы, перерыв и пересечения с бронированиями мастера
func (s *Service) CanServe(ctx context.Context, salonID, staffID int64, start, end time.Time, excludeBookingID *int64) (bool, error) {
	working, err := s.WorkingAt(ctx, salonID, staffID, start, end)
	if err != nil || !working {
		return false, err
	}

	conflict, err := s.conflicts.CheckConflict(ctx, staffID, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}

	return conflict == nil, nil
}

// localDay возвращает полночь календарного дня t в часовом поясе салона
func (s *Service) localDay(t time.Time) time.Time {
	return domain.StartOfDay(t.In(s.loc))
}
