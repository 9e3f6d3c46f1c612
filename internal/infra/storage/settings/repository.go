package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

const table = "scheduling_settings"

var columns = []string{
	"id",
	"salon_id",
	"staff_id",
	"slot_granularity_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек расписания салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новые настройки
func (r *Repository) Create(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"salon_id",
			"staff_id",
			"slot_granularity_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			s.SalonID,
			s.StaffID,
			s.SlotGranularityMinutes,
			s.MinBookingNoticeMinutes,
			s.AdvanceBookingDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetBySalonAndStaff получает настройки конкретного уровня:
// staffID == nil - настройки салона целиком, иначе - настройки мастера
func (r *Repository) GetBySalonAndStaff(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"salon_id": salonID})

	// Фильтрация по staff_id (NULL или конкретное значение)
	if staffID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndStaff - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndStaff - scan settings: %w", ErrScanRow, err)
	}

	return s, nil
}

// GetWithHierarchy получает настройки с учетом иерархии:
// 1. Настройки мастера (если staffID указан)
// 2. Настройки салона
//
// Если настройки не найдены ни на одном уровне, возвращает ErrSettingsNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, error) {
	if staffID != nil {
		s, err := r.GetBySalonAndStaff(ctx, salonID, staffID)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrSettingsNotFound) {
			return nil, fmt.Errorf("%w: GetWithHierarchy - staff level: %w", ErrExecQuery, err)
		}
	}

	s, err := r.GetBySalonAndStaff(ctx, salonID, nil)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%w: GetWithHierarchy - salon level: %w", ErrExecQuery, err)
	}

	return s, nil
}

// Update обновляет настройки по ID
func (r *Repository) Update(ctx context.Context, id int64, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("slot_granularity_minutes", s.SlotGranularityMinutes).
		Set("min_booking_notice_minutes", s.MinBookingNoticeMinutes).
		Set("advance_booking_days", s.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	s.ID = id
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Delete удаляет настройки конкретного уровня
func (r *Repository) Delete(ctx context.Context, salonID int64, staffID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"salon_id": salonID})
	if staffID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"staff_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettings(row rowScanner) (*domain.SchedulingSettings, error) {
	var (
		s                    domain.SchedulingSettings
		staffID              sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.SalonID,
		&staffID,
		&s.SlotGranularityMinutes,
		&s.MinBookingNoticeMinutes,
		&s.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if staffID.Valid {
		id := staffID.Int64
		s.StaffID = &id
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
