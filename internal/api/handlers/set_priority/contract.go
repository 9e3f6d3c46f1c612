package set_priority

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

type PriorityService interface {
	SetOrder(ctx context.Context, staffID int64, order int) (*domain.StaffPriority, error)
	SetTieBreak(ctx context.Context, staffID int64, direction domain.TieBreakDirection) (*domain.StaffPriority, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
