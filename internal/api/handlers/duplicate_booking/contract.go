package duplicate_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	duplicateBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/duplicate_booking"
)

type DuplicateBookingUseCase interface {
	Execute(ctx context.Context, req *duplicateBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
