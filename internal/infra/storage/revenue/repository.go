package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
)

const (
	table      = "invoices"
	statusPaid = "paid"
)

// Repository чтение оплаченной выручки мастеров (Revenue Ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выручки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SumPaidBySalon возвращает суммы оплаченных счетов за [from, to) по мастерам салона.
// Мастера без оплат в результат не попадают
func (r *Repository) SumPaidBySalon(ctx context.Context, salonID int64, from, to time.Time) (map[int64]float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "COALESCE(SUM(total), 0)").
		From(table).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"status": statusPaid}).
		Where(squirrel.GtOrEq{"paid_at": from}).
		Where(squirrel.Lt{"paid_at": to}).
		Where(squirrel.NotEq{"staff_id": nil}).
		GroupBy("staff_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SumPaidBySalon - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SumPaidBySalon - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	sums := make(map[int64]float64)
	for rows.Next() {
		var (
			staffID int64
			sum     float64
		)
		if err := rows.Scan(&staffID, &sum); err != nil {
			return nil, fmt.Errorf("%w: SumPaidBySalon - scan row: %w", ErrScanRow, err)
		}
		sums[staffID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SumPaidBySalon - rows error: %w", ErrScanRow, err)
	}

	return sums, nil
}
