package update_salon_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/settings/models"
)

type SettingsService interface {
	Upsert(ctx context.Context, req *models.UpsertSettingsRequest) (*models.SettingsResponse, error)
	Delete(ctx context.Context, salonID int64, staffID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
