package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"salon_id",
	"staff_id",
	"customer_id",
	"service_ids",
	"start_at",
	"end_at",
	"status",
	"notes",
	"queue_number",
	"check_in_date",
	"checked_in_at",
	"started_at",
	"completed_at",
	"cancelled_at",
	"cancellation_reason",
	"source_booking_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований (Appointment Store)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"salon_id",
			"staff_id",
			"customer_id",
			"service_ids",
			"start_at",
			"end_at",
			"status",
			"notes",
			"source_booking_id",
		).
		Values(
			booking.SalonID,
			booking.StaffID,
			booking.CustomerID,
			pq.Array(booking.ServiceIDs),
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.Notes,
			booking.SourceBookingID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID и блокирует строку до конца транзакции.
// Вне транзакции ведёт себя как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListActiveByStaff возвращает активные (не отменённые) бронирования мастера,
// затрагивающие диапазон [from, to). Внутри транзакции строки блокируются (FOR UPDATE),
// чтобы проверка пересечений и запись выполнялись атомарно
func (r *Repository) ListActiveByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaff - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List получает бронирования по фильтру, упорядоченные по времени начала.
// Если статусы не указаны, возвращаются все активные бронирования
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_at ASC, id ASC")

	if !filter.From.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": filter.From})
	}
	if !filter.To.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.To})
	}
	if filter.CheckInDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"check_in_date": filter.CheckInDate.Format(domain.DateFormat)})
	}
	if filter.SalonID != 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"salon_id": filter.SalonID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = domain.ActiveStatuses
	}
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}
	selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования (мастер, время, статус и отметки времени)
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("staff_id", booking.StaffID).
		Set("start_at", booking.StartAt).
		Set("end_at", booking.EndAt).
		Set("status", booking.Status).
		Set("notes", booking.Notes).
		Set("queue_number", booking.QueueNumber).
		Set("check_in_date", booking.CheckInDate).
		Set("checked_in_at", booking.CheckedInAt).
		Set("started_at", booking.StartedAt).
		Set("completed_at", booking.CompletedAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("cancellation_reason", booking.CancellationReason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return booking, nil
}

// PromoteDue переводит подтверждённые бронирования салона, начавшиеся в [from, now],
// в статус in_progress одним UPDATE и проставляет время начала.
// Возвращает ID переведённых бронирований
func (r *Repository) PromoteDue(ctx context.Context, salonID int64, from, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusInProgress).
		Set("started_at", now).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.LtOrEq{"start_at": now}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PromoteDue - build update query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: PromoteDue - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: PromoteDue - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: PromoteDue - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking            domain.Booking
		serviceIDs         pq.Int64Array
		notes, reason      sql.NullString
		queueNumber        sql.NullInt64
		sourceBookingID    sql.NullInt64
		checkInDate        sql.NullTime
		checkedInAt        sql.NullTime
		startedAt          sql.NullTime
		completedAt        sql.NullTime
		cancelledAt        sql.NullTime
		createdAt, updated sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.SalonID,
		&booking.StaffID,
		&booking.CustomerID,
		&serviceIDs,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&notes,
		&queueNumber,
		&checkInDate,
		&checkedInAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&reason,
		&sourceBookingID,
		&createdAt,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	booking.ServiceIDs = []int64(serviceIDs)
	booking.Notes = nullString(notes)
	booking.CancellationReason = nullString(reason)
	if queueNumber.Valid {
		n := int(queueNumber.Int64)
		booking.QueueNumber = &n
	}
	if sourceBookingID.Valid {
		id := sourceBookingID.Int64
		booking.SourceBookingID = &id
	}
	booking.CheckInDate = nullTime(checkInDate)
	booking.CheckedInAt = nullTime(checkedInAt)
	booking.StartedAt = nullTime(startedAt)
	booking.CompletedAt = nullTime(completedAt)
	booking.CancelledAt = nullTime(cancelledAt)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updated.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
