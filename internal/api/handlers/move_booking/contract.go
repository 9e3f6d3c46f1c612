package move_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	moveBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/move_booking"
)

type MoveBookingUseCase interface {
	Execute(ctx context.Context, req *moveBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
