package settings

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Create(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error)
	GetBySalonAndStaff(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, error)
	GetWithHierarchy(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, error)
	Update(ctx context.Context, id int64, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error)
	Delete(ctx context.Context, salonID int64, staffID *int64) error
}

// StaffReader интерфейс чтения мастеров
type StaffReader interface {
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
