package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/availability"
)

type AvailabilityService interface {
	ResolveSlots(ctx context.Context, req *availability.Request) (*availability.Result, error)
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
