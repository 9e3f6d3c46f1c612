package duplicate_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

const flow = "duplicate"

// UseCase копирует бронирование на то же время к другому свободному мастеру
type UseCase struct {
	bookingRepo  BookingRepository
	staffReader  StaffReader
	priorities   PriorityReader
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
	priorities PriorityReader,
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
		priorities:   priorities,
		availability: availability,
		conflicts:    conflicts,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создаёт копию бронирования с тем же началом.
// Без явного мастера выбирается первый по приоритету мастер, который оказывает все услуги,
// работает в это время и не занят. Конец копии считается по длительностям услуг выбранного мастера. Если такого нет, возвращается domain.ErrNoStaffAvailable без повторных попыток
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("DuplicateBooking: booking=%d, staff=%v", req.BookingID, ptr.Value(req.StaffID))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DuplicateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.availability.Location())

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Исходное бронирование
		source, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !source.IsActive() || source.Status == domain.StatusCompleted {
			return &domain.InvalidStatusError{BookingID: source.ID, Current: source.Status, Action: domain.ActionDuplicate}
		}
		if source.StartAt.Before(now) {
			return ErrInvalidDate
		}

		// 2. Мастер копии и конец интервала по его длительностям услуг
		staffID, end, err := uc.pickStaff(txCtx, source, req.StaffID)
		if err != nil {
			return err
		}

		// 3. Копия с тем же началом
		customerID := source.CustomerID
		if req.CustomerID != nil {
			customerID = *req.CustomerID
		}
		status := domain.StatusConfirmed
		if source.Status == domain.StatusPending {
			status = domain.StatusPending
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			SalonID:         source.SalonID,
			StaffID:         staffID,
			CustomerID:      customerID,
			ServiceIDs:      source.ServiceIDs,
			StartAt:         source.StartAt,
			EndAt:           end,
			Status:          status,
			Notes:           source.Notes,
			SourceBookingID: ptr.Ptr(source.ID),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if txmanager.IsRetryable(err) {
			err = fmt.Errorf("%w: concurrent write: %w", domain.ErrConflict, err)
		}
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNoStaffAvailable) {
			uc.metrics.ConflictRejected(flow)
		}
		uc.logger.Warn("DuplicateBooking: booking=%d not duplicated: %v", req.BookingID, err)
		return nil, err
	}

	uc.metrics.BookingWritten(flow)
	uc.logger.Info("DuplicateBooking: booking=%d duplicated as id=%d for staff=%d", req.BookingID, result.ID, result.StaffID)

	return result, nil
}

// pickStaff проверяет явно указанного мастера или выбирает первого свободного кандидата.
// Возвращает мастера и конец интервала копии
func (uc *UseCase) pickStaff(ctx context.Context, source *domain.Booking, requested *int64) (int64, time.Time, error) {
	start := source.StartAt

	capable, err := uc.capableStaff(ctx, source)
	if err != nil {
		return 0, time.Time{}, err
	}

	if requested != nil {
		staff, err := uc.staffReader.GetStaff(ctx, *requested)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrStaffNotFound) {
				return 0, time.Time{}, ErrStaffNotFound
			}
			return 0, time.Time{}, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
		}
		if !staff.IsActive || staff.SalonID != source.SalonID {
			return 0, time.Time{}, ErrStaffNotFound
		}
		if !capable[staff.ID] {
			return 0, time.Time{}, ErrServiceNotOffered
		}

		end, working, err := uc.fit(ctx, source, staff.ID)
		if err != nil {
			return 0, time.Time{}, err
		}
		if !working {
			return 0, time.Time{}, ErrOutsideWorkingHours
		}
		if err := uc.conflicts.Ensure(ctx, staff.ID, start, end, nil); err != nil {
			return 0, time.Time{}, err
		}
		return staff.ID, end, nil
	}

	candidates, err := uc.candidates(ctx, source, capable)
	if err != nil {
		return 0, time.Time{}, err
	}

	return uc.conflicts.FirstFree(ctx, candidates, start, func(ctx context.Context, staffID int64) (time.Time, bool, error) {
		return uc.fit(ctx, source, staffID)
	})
}

// fit считает конец копии по длительностям услуг мастера и проверяет окно работы
func (uc *UseCase) fit(ctx context.Context, source *domain.Booking, staffID int64) (time.Time, bool, error) {
	minutes, err := uc.availability.TotalDuration(ctx, source.SalonID, staffID, source.ServiceIDs)
	if err != nil {
		return time.Time{}, false, err
	}
	end := source.StartAt.Add(time.Duration(minutes) * time.Minute)

	working, err := uc.availability.WorkingAt(ctx, source.SalonID, staffID, source.StartAt, end)
	if err != nil {
		return time.Time{}, false, err
	}
	return end, working, nil
}

// capableStaff активные мастера салона, оказывающие все услуги исходного бронирования
func (uc *UseCase) capableStaff(ctx context.Context, source *domain.Booking) (map[int64]bool, error) {
	var capable map[int64]bool
	for _, serviceID := range source.ServiceIDs {
		staff, err := uc.staffReader.ListStaffForService(ctx, source.SalonID, serviceID)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list staff for service=%d: %w", ErrInternal, serviceID, err)
		}

		offering := make(map[int64]bool, len(staff))
		for _, st := range staff {
			if capable == nil || capable[st.ID] {
				offering[st.ID] = true
			}
		}
		capable = offering
	}
	return capable, nil
}

// candidates мастера из capable, кроме мастера исходного бронирования,
// по приоритету, при равном приоритете по ID
func (uc *UseCase) candidates(ctx context.Context, source *domain.Booking, capable map[int64]bool) ([]int64, error) {
	priorities, err := uc.priorities.ListBySalon(ctx, source.SalonID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list priorities: %w", ErrInternal, err)
	}

	order := make(map[int64]int, len(priorities))
	for _, p := range priorities {
		order[p.StaffID] = p.PriorityOrder
	}
	orderOf := func(staffID int64) int {
		if o, ok := order[staffID]; ok {
			return o
		}
		return domain.DefaultPriorityOrder
	}

	ids := make([]int64, 0, len(capable))
	for id := range capable {
		if id != source.StaffID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		oi, oj := orderOf(ids[i]), orderOf(ids[j])
		if oi != oj {
			return oi < oj
		}
		return ids[i] < ids[j]
	})

	return ids, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return domain.NewValidationError("bookingId", "must be positive")
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return domain.NewValidationError("staffId", "must be positive")
	}
	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return domain.NewValidationError("customerId", "must be positive")
	}
	return nil
}
