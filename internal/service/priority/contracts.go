package priority

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// PriorityRepository интерфейс хранилища приоритетов мастеров
type PriorityRepository interface {
	GetByStaff(ctx context.Context, staffID int64) (*domain.StaffPriority, error)
	GetBySalonAndOrder(ctx context.Context, salonID int64, order int) (*domain.StaffPriority, error)
	ListBySalon(ctx context.Context, salonID int64) ([]*domain.StaffPriority, error)
	Upsert(ctx context.Context, p *domain.StaffPriority) (*domain.StaffPriority, error)
	InsertResetMarker(ctx context.Context, salonID int64, date time.Time) (bool, error)
	HasResetMarker(ctx context.Context, salonID int64, date time.Time) (bool, error)
}

// StaffReader интерфейс чтения мастеров салона
type StaffReader interface {
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
	ListStaff(ctx context.Context, salonID int64) ([]*domain.Staff, error)
}

// RevenueReader интерфейс чтения оплаченной выручки мастеров
type RevenueReader interface {
	SumPaidBySalon(ctx context.Context, salonID int64, from, to time.Time) (map[int64]float64, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс метрик ежедневного сброса
type MetricsRecorder interface {
	DailyReset(applied bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
