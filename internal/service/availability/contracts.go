package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// ScheduleRepository интерфейс Schedule Store: окна работы, мастера и длительности услуг
type ScheduleRepository interface {
	GetWorkWindow(ctx context.Context, staffID int64, date time.Time) (*domain.WorkWindow, domain.WindowSource, error)
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
	ListStaffForService(ctx context.Context, salonID, serviceID int64) ([]*domain.Staff, error)
	GetServiceDurations(ctx context.Context, salonID, staffID int64, serviceIDs []int64) (map[int64]int, error)
}

// SalonHoursProvider часы работы салона по умолчанию
type SalonHoursProvider interface {
	DefaultWindow(ctx context.Context, salonID int64, weekday int) (*domain.WorkWindow, error)
}

// ConflictChecker проверка пересечений с активными бронированиями мастера
type ConflictChecker interface {
	ListActive(ctx context.Context, staffID int64, start, end time.Time) ([]*domain.Booking, error)
	CheckConflict(ctx context.Context, staffID int64, start, end time.Time, excludeBookingID *int64) (*domain.Booking, error)
}

// SettingsProvider действующие настройки расписания
type SettingsProvider interface {
	Effective(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, string, error)
}

// MetricsRecorder счётчик подстановок окна по умолчанию
type MetricsRecorder interface {
	ConfigGapFallback(reason string)
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
