package get_available_staff

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/availability"
)

type AvailabilityService interface {
	AvailableStaff(ctx context.Context, req *availability.StaffRequest) ([]int64, error)
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
