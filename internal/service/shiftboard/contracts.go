package shiftboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/priority"
)

// BookingRepository интерфейс бронирований салона
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	PromoteDue(ctx context.Context, salonID int64, from, now time.Time) ([]int64, error)
}

// PriorityService интерфейс очередности мастеров
type PriorityService interface {
	EnsureDailyReset(ctx context.Context, salonID int64, today time.Time) (bool, error)
	LiveOrder(ctx context.Context, salonID int64, now time.Time) ([]priority.Entry, error)
}

// RevenueReader интерфейс чтения оплаченной выручки
type RevenueReader interface {
	SumPaidBySalon(ctx context.Context, salonID int64, from, to time.Time) (map[int64]float64, error)
}

// QueueCounter интерфейс счётчика очереди
type QueueCounter interface {
	Current(ctx context.Context, salonID int64, localDate time.Time) (int, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс метрик автозапуска
type MetricsRecorder interface {
	AutoPromoted(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
