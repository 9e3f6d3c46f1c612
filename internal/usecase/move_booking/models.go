package move_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Request перенос бронирования на другое время и (или) к другому мастеру.
// Пустые поля сохраняют текущее значение
type Request struct {
	BookingID int64
	StaffID   *int64            // новый мастер
	Date      *time.Time        // новая дата в часовом поясе салона
	StartTime *types.TimeString // новое время начала
}
