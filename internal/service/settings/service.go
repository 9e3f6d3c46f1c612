package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/settings/models"
)

// Service сервис настроек расписания (шаг слотов, минимальное время до записи, горизонт записи)
type Service struct {
	settingsRepo       SettingsRepository
	staffReader        StaffReader
	defaultGranularity int
	logger             Logger
}

// NewService создает новый экземпляр сервиса настроек.
// defaultGranularity используется, когда ни мастер, ни салон не настроены
func NewService(
	settingsRepo SettingsRepository,
	staffReader StaffReader,
	defaultGranularity int,
	logger Logger,
) *Service {
	if defaultGranularity <= 0 {
		defaultGranularity = domain.DefaultSlotGranularityMinutes
	}
	return &Service{
		settingsRepo:       settingsRepo,
		staffReader:        staffReader,
		defaultGranularity: defaultGranularity,
		logger:             logger,
	}
}

// Effective возвращает действующие настройки: мастер → салон → значения по умолчанию
func (s *Service) Effective(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, string, error) {
	settings, err := s.settingsRepo.GetWithHierarchy(ctx, salonID, staffID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			defaults := domain.DefaultSettings(salonID)
			defaults.SlotGranularityMinutes = s.defaultGranularity
			return defaults, models.LevelDefault, nil
		}
		s.logger.Error("Effective: repository error for salon=%d staff=%v: %v", salonID, staffID, err)
		return nil, "", fmt.Errorf("%w: Effective - repository error: %v", ErrInternal, err)
	}

	level := models.LevelSalon
	if !settings.IsSalonWide() {
		level = models.LevelStaff
	}
	return settings, level, nil
}

// Get возвращает действующие настройки для ответа API
func (s *Service) Get(ctx context.Context, salonID int64, staffID *int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for salon=%d staff=%v", salonID, staffID)

	if err := s.checkStaff(ctx, salonID, staffID); err != nil {
		return nil, err
	}

	settings, level, err := s.Effective(ctx, salonID, staffID)
	if err != nil {
		return nil, err
	}

	return models.FromDomain(settings, level), nil
}

// Upsert создаёт или частично обновляет настройки указанного уровня
func (s *Service) Upsert(ctx context.Context, req *models.UpsertSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Upsert: saving settings for salon=%d staff=%v", req.SalonID, req.StaffID)

	// 1. Проверяем, что мастер принадлежит салону
	if err := s.checkStaff(ctx, req.SalonID, req.StaffID); err != nil {
		return nil, err
	}

	// 2. Получаем существующие настройки уровня
	existing, err := s.settingsRepo.GetBySalonAndStaff(ctx, req.SalonID, req.StaffID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	// 3. Новый уровень наследует действующие настройки
	var target domain.SchedulingSettings
	if existing != nil {
		target = *existing
	} else {
		inherited, _, err := s.Effective(ctx, req.SalonID, req.StaffID)
		if err != nil {
			return nil, err
		}
		target = *inherited
		target.ID = 0
		target.SalonID = req.SalonID
		target.StaffID = req.StaffID
	}
	req.ApplyTo(&target)

	// 4. Валидируем результат
	if err := validate(&target); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 5. Сохраняем
	var saved *domain.SchedulingSettings
	if existing != nil {
		saved, err = s.settingsRepo.Update(ctx, existing.ID, &target)
	} else {
		saved, err = s.settingsRepo.Create(ctx, &target)
	}
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	level := models.LevelSalon
	if !saved.IsSalonWide() {
		level = models.LevelStaff
	}

	s.logger.Info("Upsert: saved settings id=%d (level: %s)", saved.ID, level)
	return models.FromDomain(saved, level), nil
}

// Delete удаляет настройки уровня; после удаления действуют настройки уровнем выше
func (s *Service) Delete(ctx context.Context, salonID int64, staffID *int64) error {
	s.logger.Info("Delete: deleting settings for salon=%d staff=%v", salonID, staffID)

	if err := s.settingsRepo.Delete(ctx, salonID, staffID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) checkStaff(ctx context.Context, salonID int64, staffID *int64) error {
	if staffID == nil {
		return nil
	}

	staff, err := s.staffReader.GetStaff(ctx, *staffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("checkStaff: failed to get staff id=%d: %v", *staffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if staff.SalonID != salonID {
		s.logger.Warn("checkStaff: staff id=%d does not belong to salon=%d", *staffID, salonID)
		return ErrStaffNotFound
	}

	return nil
}

// validate проверяет диапазоны значений настроек
func validate(s *domain.SchedulingSettings) error {
	if s.SlotGranularityMinutes < domain.MinSlotGranularityMinutes || s.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}
	if s.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}
	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}
	return nil
}
