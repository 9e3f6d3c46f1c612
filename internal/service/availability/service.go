package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// Service расчёт свободных слотов и свободных мастеров.
// Все календарные дни и минуты суток считаются в часовом поясе салона
type Service struct {
	scheduleRepo ScheduleRepository
	salonHours   SalonHoursProvider
	conflicts    ConflictChecker
	settings     SettingsProvider
	metrics      MetricsRecorder
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности.
// salonHours может быть nil: тогда при отсутствии окна мастера сразу используется окно по умолчанию
func NewService(
	scheduleRepo ScheduleRepository,
	salonHours SalonHoursProvider,
	conflicts ConflictChecker,
	settings SettingsProvider,
	metrics MetricsRecorder,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		scheduleRepo: scheduleRepo,
		salonHours:   salonHours,
		conflicts:    conflicts,
		settings:     settings,
		metrics:      metrics,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

type noopMetrics struct{}

func (noopMetrics) ConfigGapFallback(string) {}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Location часовой пояс салона
func (s *Service) Location() *time.Location {
	return s.loc
}

// ResolveSlots возвращает слоты мастера на дату для набора услуг
func (s *Service) ResolveSlots(ctx context.Context, req *Request) (*Result, error) {
	s.logger.Info("ResolveSlots: salon=%d, staff=%d, services=%v, date=%s",
		req.SalonID, req.StaffID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		s.logger.Warn("ResolveSlots: validation failed: %v", err)
		return nil, err
	}

	date := s.localDay(req.Date)
	result := &Result{
		SalonID: req.SalonID,
		StaffID: req.StaffID,
		Date:    date,
		Slots:   []domain.Slot{},
	}

	// 2. Мастер должен существовать, работать в салоне и быть активным
	staff, err := s.scheduleRepo.GetStaff(ctx, req.StaffID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrStaffNotFound) {
		s.logger.Error("ResolveSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if staff == nil || !staff.IsActive || staff.SalonID != req.SalonID {
		s.logger.Info("ResolveSlots: staff id=%d is not available in salon=%d", req.StaffID, req.SalonID)
		result.Reason = domain.ReasonNoStaff
		return result, nil
	}

	// 3. Настройки: шаг слотов, минимальное время до записи, горизонт записи
	settings, _, err := s.settings.Effective(ctx, req.SalonID, ptr.Ptr(req.StaffID))
	if err != nil {
		return nil, err
	}
	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = settings.SlotGranularityMinutes
	}
	result.GranularityMinutes = granularity

	now := s.timeProvider.Now().In(s.loc)
	if err := validateHorizon(date, now, settings); err != nil {
		s.logger.Warn("ResolveSlots: %v", err)
		return nil, err
	}

	// 4. Общая длительность услуг
	duration, err := s.TotalDuration(ctx, req.SalonID, req.StaffID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	result.DurationMinutes = duration

	// 5. Окно работы
	window, err := s.EffectiveWindow(ctx, req.SalonID, req.StaffID, date)
	if err != nil {
		return nil, err
	}
	result.Window = window

	// 6. Активные бронирования мастера на дату
	dayStart, dayEnd := domain.DayRange(date)
	bookings, err := s.conflicts.ListActive(ctx, req.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// 7. Перебор кандидатов по всем суткам
	cutoff := now.Add(time.Duration(settings.MinBookingNoticeMinutes) * time.Minute)
	scan := scanSlots(date, *window, bookings, duration, granularity, cutoff)

	result.Slots = scan.slots(req.WithDetails)
	result.Reason = scan.reason()

	s.logger.Info("ResolveSlots: staff=%d, date=%s, window=%s, available=%d, reason=%q",
		req.StaffID, date.Format(domain.DateFormat), window.Source, len(scan.available), result.Reason)

	return result, nil
}

// TotalDuration суммирует длительности услуг салона для мастера
// (индивидуальная длительность мастера, иначе длительность услуги)
func (s *Service) TotalDuration(ctx context.Context, salonID, staffID int64, serviceIDs []int64) (int, error) {
	durations, err := s.scheduleRepo.GetServiceDurations(ctx, salonID, staffID, serviceIDs)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			return 0, domain.NewValidationError("serviceIds", "contains unknown service")
		}
		s.logger.Error("TotalDuration: failed to get durations for staff=%d: %v", staffID, err)
		return 0, fmt.Errorf("%w: failed to get service durations: %w", ErrInternal, err)
	}

	total := 0
	for _, id := range serviceIDs {
		total += durations[id]
	}
	if total <= 0 {
		return 0, domain.NewValidationError("serviceIds", "total duration must be positive")
	}

	return total, nil
}

// AvailableStaff возвращает ID мастеров салона, оказывающих услугу, которые свободны
// в указанное время (окно работы, перерыв, бронирования). Порядок - по ID мастера
func (s *Service) AvailableStaff(ctx context.Context, req *StaffRequest) ([]int64, error) {
	s.logger.Info("AvailableStaff: salon=%d, service=%d, date=%s, time=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	if err := validateStaffRequest(req); err != nil {
		s.logger.Warn("AvailableStaff: validation failed: %v", err)
		return nil, err
	}

	start, err := req.Time.On(s.localDay(req.Date))
	if err != nil {
		return nil, domain.NewValidationError("time", "must be HH:MM")
	}

	staff, err := s.scheduleRepo.ListStaffForService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		s.logger.Error("AvailableStaff: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %w", ErrInternal, err)
	}

	result := make([]int64, 0, len(staff))
	for _, st := range staff {
		duration, err := s.TotalDuration(ctx, req.SalonID, st.ID, []int64{req.ServiceID})
		if err != nil {
			return nil, err
		}

		ok, err := s.CanServe(ctx, req.SalonID, st.ID, start, start.Add(time.Duration(duration)*time.Minute), nil)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, st.ID)
		}
	}

	s.logger.Info("AvailableStaff: %d of %d staff available", len(result), len(staff))
	return result, nil
}
