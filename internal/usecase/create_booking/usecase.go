package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

const flow = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	staffReader  StaffReader
	availability Availability
	conflicts    ConflictGuard
	settings     SettingsProvider
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffReader StaffReader,
	availability Availability,
	conflicts ConflictGuard,
	settings SettingsProvider,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffReader:  staffReader,
		availability: availability,
		conflicts:    conflicts,
		settings:     settings,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: salon=%d, staff=%d, customer=%d, services=%v, date=%s, time=%s",
		req.SalonID, req.StaffID, req.CustomerID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	loc := uc.availability.Location()
	now := uc.timeProvider.Now().In(loc)

	// 2. Мастер
	staff, err := uc.staffReader.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if !staff.IsActive || staff.SalonID != req.SalonID {
		uc.logger.Warn("CreateBooking: staff id=%d is not available in salon=%d", req.StaffID, req.SalonID)
		return nil, ErrStaffNotFound
	}

	// 3. Интервал бронирования
	duration, err := uc.availability.TotalDuration(ctx, req.SalonID, req.StaffID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	start, err := req.StartTime.On(domain.StartOfDay(req.Date.In(loc)))
	if err != nil {
		return nil, domain.NewValidationError("startTime", "must be HH:MM")
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	// 4. Прошедшее время, минимальное время до записи, горизонт записи
	settings, _, err := uc.settings.Effective(ctx, req.SalonID, ptr.Ptr(req.StaffID))
	if err != nil {
		return nil, err
	}
	if err := validateTiming(start, now, settings); err != nil {
		uc.logger.Warn("CreateBooking: timing validation failed: %v", err)
		return nil, err
	}

	// 5. Окно работы и перерыв
	working, err := uc.availability.WorkingAt(ctx, req.SalonID, req.StaffID, start, end)
	if err != nil {
		return nil, err
	}
	if !working {
		uc.logger.Warn("CreateBooking: %s-%s is outside working hours of staff=%d",
			start.Format(domain.TimeFormat), end.Format(domain.TimeFormat), req.StaffID)
		return nil, ErrOutsideWorkingHours
	}

	status := req.Status
	if status == "" {
		status = domain.StatusConfirmed
	}

	var result *domain.Booking

	// 6. Проверка пересечений и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные бронирования мастера блокируются (FOR UPDATE)
		if err := uc.conflicts.Ensure(txCtx, req.StaffID, start, end, nil); err != nil {
			return err
		}

		// 6.2. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			SalonID:    req.SalonID,
			StaffID:    req.StaffID,
			CustomerID: req.CustomerID,
			ServiceIDs: req.ServiceIDs,
			StartAt:    start,
			EndAt:      end,
			Status:     status,
			Notes:      req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		// Конкурентная запись в тот же интервал откатывает транзакцию: для клиента это тот же конфликт
		if txmanager.IsRetryable(err) {
			err = fmt.Errorf("%w: concurrent write: %w", domain.ErrConflict, err)
		}
		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Warn("CreateBooking: slot no longer available: staff=%d, start=%s: %v",
				req.StaffID, start.Format(time.RFC3339), err)
			uc.metrics.ConflictRejected(flow)
		}
		return nil, err
	}

	uc.metrics.BookingWritten(flow)
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return result, nil
}
