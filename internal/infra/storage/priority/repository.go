package priority

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

const (
	table        = "staff_priorities"
	markersTable = "priority_reset_markers"
)

var columns = []string{"staff_id", "salon_id", "priority_order", "sort_by_revenue", "updated_at"}

// Repository репозиторий приоритетов мастеров и маркеров ежедневного сброса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приоритетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaff получает приоритет мастера. Внутри транзакции строка блокируется
func (r *Repository) GetByStaff(ctx context.Context, staffID int64) (*domain.StaffPriority, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"staff_id": staffID})

	return r.getOne(ctx, "GetByStaff", selectBuilder)
}

// GetBySalonAndOrder получает мастера салона, занимающего ровно указанную позицию.
// Внутри транзакции строка блокируется
func (r *Repository) GetBySalonAndOrder(ctx context.Context, salonID int64, order int) (*domain.StaffPriority, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"priority_order": order}).
		OrderBy("staff_id ASC").
		Limit(1)

	return r.getOne(ctx, "GetBySalonAndOrder", selectBuilder)
}

func (r *Repository) getOne(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) (*domain.StaffPriority, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	p, err := scanPriority(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPriorityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan priority: %w", ErrScanRow, op, err)
	}

	return p, nil
}

// ListBySalon возвращает сохранённые приоритеты мастеров салона.
// Внутри транзакции все строки салона блокируются
func (r *Repository) ListBySalon(ctx context.Context, salonID int64) ([]*domain.StaffPriority, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("priority_order ASC", "staff_id ASC")
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	priorities := make([]*domain.StaffPriority, 0)
	for rows.Next() {
		p, err := scanPriority(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %w", ErrScanRow, err)
		}
		priorities = append(priorities, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %w", ErrScanRow, err)
	}

	return priorities, nil
}

// Upsert сохраняет приоритет мастера (вставка или обновление по staff_id)
func (r *Repository) Upsert(ctx context.Context, p *domain.StaffPriority) (*domain.StaffPriority, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("staff_id", "salon_id", "priority_order", "sort_by_revenue").
		Values(p.StaffID, p.SalonID, p.PriorityOrder, p.TieBreak).
		Suffix(`ON CONFLICT (staff_id) DO UPDATE SET
			priority_order = EXCLUDED.priority_order,
			sort_by_revenue = EXCLUDED.sort_by_revenue,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// InsertResetMarker пытается записать маркер ежедневного сброса.
// Возвращает false, если маркер на эту дату уже существует
func (r *Repository) InsertResetMarker(ctx context.Context, salonID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(markersTable).
		Columns("salon_id", "reset_date").
		Values(salonID, date.Format(domain.DateFormat)).
		Suffix("ON CONFLICT (salon_id, reset_date) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: InsertResetMarker - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: InsertResetMarker - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: InsertResetMarker - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// HasResetMarker проверяет, был ли выполнен сброс на дату
func (r *Repository) HasResetMarker(ctx context.Context, salonID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(markersTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"reset_date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasResetMarker - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasResetMarker - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPriority(row rowScanner) (*domain.StaffPriority, error) {
	var (
		p         domain.StaffPriority
		updatedAt sql.NullTime
	)

	if err := row.Scan(&p.StaffID, &p.SalonID, &p.PriorityOrder, &p.TieBreak, &updatedAt); err != nil {
		return nil, err
	}
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
