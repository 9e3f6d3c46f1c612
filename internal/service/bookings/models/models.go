package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// SalonDayRequest бронирования салона за календарный день
type SalonDayRequest struct {
	SalonID  int64
	Date     time.Time // календарная дата в часовом поясе салона
	StaffID  *int64
	Statuses []domain.BookingStatus // пусто - все активные
}

// StaffRangeRequest календарь мастера за период [From, To] (даты включительно)
type StaffRangeRequest struct {
	StaffID  int64
	From     time.Time
	To       time.Time
	Statuses []domain.BookingStatus
}

// ParseStatuses разбирает список статусов; неизвестный статус - ошибка валидации
func ParseStatuses(values []string) ([]domain.BookingStatus, error) {
	statuses := make([]domain.BookingStatus, 0, len(values))
	for _, v := range values {
		status := domain.BookingStatus(v)
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCheckedIn,
			domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled:
			statuses = append(statuses, status)
		default:
			return nil, domain.NewValidationError("status", "unknown value "+v)
		}
	}
	return statuses, nil
}
