package duplicate_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/conflicts"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// StaffReader интерфейс чтения мастеров
type StaffReader interface {
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
	ListStaffForService(ctx context.Context, salonID, serviceID int64) ([]*domain.Staff, error)
}

// PriorityReader интерфейс чтения приоритетов мастеров
type PriorityReader interface {
	ListBySalon(ctx context.Context, salonID int64) ([]*domain.StaffPriority, error)
}

// Availability интерфейс длительности услуг и окна работы мастера
type Availability interface {
	TotalDuration(ctx context.Context, salonID, staffID int64, serviceIDs []int64) (int, error)
	WorkingAt(ctx context.Context, salonID, staffID int64, start, end time.Time) (bool, error)
	Location() *time.Location
}

// ConflictGuard интерфейс проверки пересечений
type ConflictGuard interface {
	Ensure(ctx context.Context, staffID int64, start, end time.Time, excludeBookingID *int64) error
	FirstFree(ctx context.Context, candidates []int64, start time.Time, fit conflicts.FitFunc) (int64, time.Time, error)
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

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
