package queue

import (
	"context"
	"time"
)

// CounterRepository интерфейс счётчиков очереди салона
type CounterRepository interface {
	Increment(ctx context.Context, salonID int64, date time.Time) (int, error)
	Current(ctx context.Context, salonID int64, date time.Time) (int, error)
}

// MetricsRecorder интерфейс метрик очереди
type MetricsRecorder interface {
	QueueNumberIssued()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
