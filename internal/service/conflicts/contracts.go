package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// BookingRepository интерфейс чтения активных бронирований мастера
type BookingRepository interface {
	ListActiveByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FitFunc вычисляет конец интервала для мастера и проверяет, может ли он в принципе
// его принять (услуги, окно работы, перерыв). ok=false пропускает мастера
type FitFunc func(ctx context.Context, staffID int64) (end time.Time, ok bool, err error)
