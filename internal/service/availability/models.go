package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Request запрос слотов мастера на дату
type Request struct {
	SalonID            int64
	StaffID            int64
	ServiceIDs         []int64
	Date               time.Time // календарная дата в часовом поясе салона
	GranularityMinutes int       // 0 = из настроек
	WithDetails        bool      // включить исключённые слоты с причиной
}

// Result слоты мастера на дату
type Result struct {
	SalonID            int64
	StaffID            int64
	Date               time.Time
	DurationMinutes    int
	GranularityMinutes int
	Window             *domain.EffectiveWindow
	Slots              []domain.Slot
	Reason             domain.AvailabilityReason
}

// AvailableCount количество доступных слотов
func (r *Result) AvailableCount() int {
	count := 0
	for _, s := range r.Slots {
		if s.Available {
			count++
		}
	}
	return count
}

// StaffRequest запрос мастеров, свободных в фиксированное время
type StaffRequest struct {
	SalonID   int64
	ServiceID int64
	Date      time.Time
	Time      types.TimeString
}
