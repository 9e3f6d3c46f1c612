package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

// UseCase отмечает приход клиента и выдаёт номер живой очереди
type UseCase struct {
	bookingRepo  BookingRepository
	queue        QueueSequencer
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	queue QueueSequencer,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		queue:        queue,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переводит бронирование в CHECKED_IN и присваивает номер очереди на сегодняшний день салона.
// Номер выдаётся в той же транзакции: если запись не удалась, номер не расходуется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CheckIn: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, domain.NewValidationError("bookingId", "must be positive")
	}

	now := uc.timeProvider.Now()
	day := uc.queue.LocalDate(now)

	var result *domain.Booking

	err := uc.inTx(ctx, func(txCtx context.Context) error {
		// 1. Бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !booking.CanCheckIn() {
			return &domain.InvalidStatusError{BookingID: booking.ID, Current: booking.Status, Action: domain.ActionCheckIn}
		}

		// 2. Номер очереди салона на сегодня
		number, err := uc.queue.Next(txCtx, booking.SalonID, day)
		if err != nil {
			return err
		}

		// 3. Сохраняем
		booking.Status = domain.StatusCheckedIn
		booking.QueueNumber = ptr.Ptr(number)
		booking.CheckInDate = ptr.Ptr(day)
		booking.CheckedInAt = ptr.Ptr(now)

		result, err = uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warn("CheckIn: booking=%d not checked in: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("CheckIn: booking=%d checked in with queue number %d", result.ID, *result.QueueNumber)
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
