package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

// Repository репозиторий расписаний мастеров и справочников мастеров/услуг (Schedule Store)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkWindow возвращает окно работы мастера на дату.
// Окно на конкретную дату имеет приоритет над еженедельным окном того же дня недели
func (r *Repository) GetWorkWindow(ctx context.Context, staffID int64, date time.Time) (*domain.WorkWindow, domain.WindowSource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := date.Format(domain.DateFormat)
	weekday := int(date.Weekday())

	query, args, err := psqlbuilder.Select(
		"staff_id",
		"weekday",
		"schedule_date",
		"start_minute",
		"end_minute",
		"break_start_minute",
		"break_end_minute",
	).
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Or{
			squirrel.Eq{"schedule_date": day},
			squirrel.And{
				squirrel.Eq{"schedule_date": nil},
				squirrel.Eq{"weekday": weekday},
			},
		}).
		// Окно на дату первым
		OrderBy("schedule_date IS NULL ASC", "id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("%w: GetWorkWindow - build select query: %w", ErrBuildQuery, err)
	}

	var (
		window              domain.WorkWindow
		wd                  sql.NullInt64
		scheduleDate        sql.NullTime
		breakStart, breakTo sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.StaffID,
		&wd,
		&scheduleDate,
		&window.StartMinute,
		&window.EndMinute,
		&breakStart,
		&breakTo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrWindowNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: GetWorkWindow - scan window: %w", ErrScanRow, err)
	}

	source := domain.WindowSourceWeekday
	if scheduleDate.Valid {
		d := scheduleDate.Time
		window.Date = &d
		source = domain.WindowSourceDate
	}
	if wd.Valid {
		v := int(wd.Int64)
		window.Weekday = &v
	}
	if breakStart.Valid && breakTo.Valid {
		bs, be := int(breakStart.Int64), int(breakTo.Int64)
		window.BreakStartMinute = &bs
		window.BreakEndMinute = &be
	}

	return &window, source, nil
}

// GetStaff получает мастера по ID
func (r *Repository) GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "is_active").
		From("staff").
		Where(squirrel.Eq{"id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %w", ErrBuildQuery, err)
	}

	var staff domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&staff.ID, &staff.SalonID, &staff.Name, &staff.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %w", ErrScanRow, err)
	}

	return &staff, nil
}

// ListStaff возвращает активных мастеров салона в порядке ID
func (r *Repository) ListStaff(ctx context.Context, salonID int64) ([]*domain.Staff, error) {
	return r.listStaff(ctx, salonID, nil)
}

// ListStaffForService возвращает активных мастеров салона, оказывающих услугу
func (r *Repository) ListStaffForService(ctx context.Context, salonID, serviceID int64) ([]*domain.Staff, error) {
	return r.listStaff(ctx, salonID, &serviceID)
}

func (r *Repository) listStaff(ctx context.Context, salonID int64, serviceID *int64) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("st.id", "st.salon_id", "st.name", "st.is_active").
		From("staff st").
		Where(squirrel.Eq{"st.salon_id": salonID}).
		Where(squirrel.Eq{"st.is_active": true}).
		OrderBy("st.id ASC")

	if serviceID != nil {
		selectBuilder = selectBuilder.
			Join("staff_services ss ON ss.staff_id = st.id").
			Where(squirrel.Eq{"ss.service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.SalonID, &s.Name, &s.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan row: %w", ErrScanRow, err)
		}
		staff = append(staff, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows error: %w", ErrScanRow, err)
	}

	return staff, nil
}

// ListSalonIDs возвращает ID салонов, в которых есть активные мастера
func (r *Repository) ListSalonIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT salon_id").
		From("staff").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("salon_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSalonIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSalonIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListSalonIDs - scan row: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSalonIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// GetServiceDurations возвращает длительность каждой услуги салона для мастера:
// индивидуальное значение мастера, если задано, иначе длительность услуги по умолчанию.
// Если хотя бы одна услуга не найдена в салоне, возвращает ErrServiceNotFound
func (r *Repository) GetServiceDurations(ctx context.Context, salonID, staffID int64, serviceIDs []int64) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.id", "COALESCE(ss.duration_minutes, s.duration_minutes)").
		From("services s").
		LeftJoin("staff_services ss ON ss.service_id = s.id AND ss.staff_id = ?", staffID).
		Where(squirrel.Eq{"s.id": serviceIDs}).
		Where(squirrel.Eq{"s.salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceDurations - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceDurations - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	durations := make(map[int64]int, len(serviceIDs))
	for rows.Next() {
		var (
			id       int64
			duration int
		)
		if err := rows.Scan(&id, &duration); err != nil {
			return nil, fmt.Errorf("%w: GetServiceDurations - scan row: %w", ErrScanRow, err)
		}
		durations[id] = duration
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServiceDurations - rows error: %w", ErrScanRow, err)
	}

	for _, id := range serviceIDs {
		if _, ok := durations[id]; !ok {
			return nil, fmt.Errorf("%w: service_id=%d", ErrServiceNotFound, id)
		}
	}

	return durations, nil
}
