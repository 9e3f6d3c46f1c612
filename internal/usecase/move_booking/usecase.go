package move_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

const flow = "move"

// UseCase перенос бронирования (смена времени, перетаскивание в календаре, переназначение мастера)
type UseCase struct {
	bookingRepo  BookingRepository
	staffReader  StaffReader
	availability Availability
	conflicts    ConflictGuard
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
	txManager TransactionManager,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffReader:  staffReader,
		availability: availability,
		conflicts:    conflicts,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переносит бронирование. При конфликте бронирование остаётся без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("MoveBooking: booking=%d, staff=%v, date=%v, time=%v",
		req.BookingID, ptr.Value(req.StaffID), ptr.Value(req.Date), ptr.Value(req.StartTime))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveBooking: validation failed: %v", err)
		return nil, err
	}

	loc := uc.availability.Location()
	now := uc.timeProvider.Now().In(loc)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !booking.CanBeMoved() {
			return &domain.InvalidStatusError{BookingID: booking.ID, Current: booking.Status, Action: domain.ActionMove}
		}

		// 3. Целевой мастер
		staffID := booking.StaffID
		if req.StaffID != nil && *req.StaffID != booking.StaffID {
			staffID = *req.StaffID
			if err := uc.checkStaff(txCtx, staffID, booking.SalonID); err != nil {
				return err
			}
		}

		// 4. Новый интервал: длительность пересчитывается для целевого мастера
		start, err := targetStart(booking.StartAt.In(loc), req)
		if err != nil {
			return err
		}
		duration := booking.Duration()
		if staffID != booking.StaffID {
			minutes, err := uc.availability.TotalDuration(txCtx, booking.SalonID, staffID, booking.ServiceIDs)
			if err != nil {
				return err
			}
			duration = time.Duration(minutes) * time.Minute
		}
		end := start.Add(duration)

		if start.Before(now) {
			return ErrInvalidDate
		}

		// 5. Окно работы, перерыв и пересечения (само переносимое бронирование исключается)
		working, err := uc.availability.WorkingAt(txCtx, booking.SalonID, staffID, start, end)
		if err != nil {
			return err
		}
		if !working {
			return ErrOutsideWorkingHours
		}
		if err := uc.conflicts.Ensure(txCtx, staffID, start, end, ptr.Ptr(booking.ID)); err != nil {
			return err
		}

		// 6. Сохраняем
		booking.StaffID = staffID
		booking.StartAt = start
		booking.EndAt = end
		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		if txmanager.IsRetryable(err) {
			err = fmt.Errorf("%w: concurrent write: %w", domain.ErrConflict, err)
		}
		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Warn("MoveBooking: slot no longer available for booking=%d: %v", req.BookingID, err)
			uc.metrics.ConflictRejected(flow)
		} else {
			uc.logger.Warn("MoveBooking: booking=%d not moved: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.metrics.BookingWritten(flow)
	uc.logger.Info("MoveBooking: booking=%d moved to staff=%d at %s",
		result.ID, result.StaffID, result.StartAt.Format(time.RFC3339))

	return result, nil
}

func (uc *UseCase) checkStaff(ctx context.Context, staffID, salonID int64) error {
	staff, err := uc.staffReader.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if !staff.IsActive || staff.SalonID != salonID {
		return ErrStaffNotFound
	}
	return nil
}

// targetStart новое время начала: дата и время берутся из запроса, недостающее - из текущего бронирования
func targetStart(current time.Time, req *Request) (time.Time, error) {
	day := domain.StartOfDay(current)
	if req.Date != nil {
		day = domain.StartOfDay(req.Date.In(current.Location()))
	}

	clock := types.NewTimeString(current)
	if req.StartTime != nil {
		clock = *req.StartTime
	}

	start, err := clock.On(day)
	if err != nil {
		return time.Time{}, domain.NewValidationError("startTime", "must be HH:MM")
	}
	return start, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return domain.NewValidationError("bookingId", "must be positive")
	}
	if req.StaffID == nil && req.Date == nil && req.StartTime == nil {
		return domain.NewValidationError("request", "nothing to change")
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return domain.NewValidationError("staffId", "must be positive")
	}
	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return domain.NewValidationError("startTime", "must be HH:MM")
		}
	}
	return nil
}
