package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// StaffReader интерфейс чтения мастеров
type StaffReader interface {
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
}

// Availability интерфейс расчёта длительности и окна работы мастера
type Availability interface {
	TotalDuration(ctx context.Context, salonID, staffID int64, serviceIDs []int64) (int, error)
	WorkingAt(ctx context.Context, salonID, staffID int64, start, end time.Time) (bool, error)
	Location() *time.Location
}

// ConflictGuard интерфейс проверки пересечений
type ConflictGuard interface {
	Ensure(ctx context.Context, staffID int64, start, end time.Time, excludeBookingID *int64) error
}

// SettingsProvider интерфейс действующих настроек расписания
type SettingsProvider interface {
	Effective(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс метрик записи
type MetricsRecorder interface {
	BookingWritten(flow string)
	ConflictRejected(flow string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
