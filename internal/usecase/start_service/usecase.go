package start_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

// UseCase начало обслуживания клиента мастером
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переводит бронирование из CONFIRMED или CHECKED_IN в IN_PROGRESS
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("StartService: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, domain.NewValidationError("bookingId", "must be positive")
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking
	err := uc.inTx(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !booking.CanStart() {
			return &domain.InvalidStatusError{BookingID: booking.ID, Current: booking.Status, Action: domain.ActionStart}
		}

		booking.Status = domain.StatusInProgress
		booking.StartedAt = ptr.Ptr(now)

		result, err = uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warn("StartService: booking=%d not started: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("StartService: booking=%d started by staff=%d", result.ID, result.StaffID)
	return result, nil
}

// inTx выполняет fn в транзакции READ COMMITTED. Строка бронирования блокируется FOR UPDATE,
// счётчик очереди - самим upsert, поэтому сериализация не нужна.
// Взаимные блокировки повторяются, затем отдаются как конфликт
func (uc *UseCase) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := txmanager.Retry(ctx, txmanager.DefaultRetryAttempts, func(ctx context.Context) error {
		return uc.txManager.Do(ctx, fn)
	})
	if txmanager.IsRetryable(err) {
		return fmt.Errorf("%w: concurrent update: %w", domain.ErrConflict, err)
	}
	return err
}
