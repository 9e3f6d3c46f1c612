package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SalonID    int64                // ID салона
	StaffID    int64                // ID мастера
	CustomerID int64                // ID клиента
	ServiceIDs []int64              // Услуги (длительность суммируется)
	Date       time.Time            // Дата бронирования в часовом поясе салона
	StartTime  types.TimeString     // Время начала (например, "10:00")
	Status     domain.BookingStatus // pending или confirmed (по умолчанию confirmed)
	Notes      *string              // Заметки (опционально)
}
