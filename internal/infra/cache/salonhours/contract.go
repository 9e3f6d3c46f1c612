package salonhours

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/salonservice"
)

// HoursClient источник часов работы салона (SalonService)
type HoursClient interface {
	ResolveWorkingHours(ctx context.Context, salonID int64) (*salonservice.WorkingHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
