package queue

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

const table = "queue_counters"

// Repository счётчики очереди по (салон, дата)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счётчиков очереди
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Increment атомарно увеличивает счётчик салона на дату и возвращает новое значение.
// Первый вызов за день создаёт счётчик со значением 1.
// Конкурентные вызовы сериализуются блокировкой строки счётчика
func (r *Repository) Increment(ctx context.Context, salonID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("salon_id", "queue_date", "last_number").
		Values(salonID, date.Format(domain.DateFormat), 1).
		Suffix(`ON CONFLICT (salon_id, queue_date) DO UPDATE SET
			last_number = queue_counters.last_number + 1,
			updated_at = NOW()
			RETURNING last_number`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Increment - build insert query: %w", ErrBuildQuery, err)
	}

	var number int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&number); err != nil {
		return 0, fmt.Errorf("%w: Increment - execute upsert: %w", ErrExecQuery, err)
	}

	return number, nil
}

// Current возвращает последний выданный номер салона на дату (0, если номеров не выдавалось)
func (r *Repository) Current(ctx context.Context, salonID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("last_number").
		From(table).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"queue_date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Current - build select query: %w", ErrBuildQuery, err)
	}

	var number int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&number)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Current - execute query: %w", ErrExecQuery, err)
	}

	return number, nil
}
