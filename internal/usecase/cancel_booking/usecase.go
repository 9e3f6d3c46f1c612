package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

// UseCase отмена бронирования. Отменённое бронирование освобождает интервал мастера
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

// Execute переводит бронирование из PENDING, CONFIRMED или CHECKED_IN в CANCELLED
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
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
		if !booking.CanBeCancelled() {
			return &domain.InvalidStatusError{BookingID: booking.ID, Current: booking.Status, Action: domain.ActionCancel}
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledAt = ptr.Ptr(now)
		booking.CancellationReason = req.Reason

		result, err = uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warn("CancelBooking: booking=%d not cancelled: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking=%d cancelled", result.ID)
	return result, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return domain.NewValidationError("bookingId", "must be positive")
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return domain.NewValidationError("reason", "is too long")
	}
	return nil
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
