package jobs

import (
	"context"
	"time"
)

// SalonLister интерфейс списка салонов с активными мастерами
type SalonLister interface {
	ListSalonIDs(ctx context.Context) ([]int64, error)
}

// PriorityResetter интерфейс ежедневного сброса приоритетов
type PriorityResetter interface {
	EnsureDailyReset(ctx context.Context, salonID int64, today time.Time) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
