package swap_priority

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

type PriorityService interface {
	Swap(ctx context.Context, staffID int64, direction domain.SwapDirection) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
