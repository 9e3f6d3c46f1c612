package get_priorities

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/priority"
)

type PriorityService interface {
	History(ctx context.Context, salonID int64, date time.Time, override *domain.TieBreakDirection) ([]priority.Entry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
