package complete_service

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	uc "github.com/m04kA/SMC-SalonScheduler/internal/usecase/complete_service"
)

type UseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
