package shiftboard

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Board доска смены салона на текущий момент
type Board struct {
	SalonID         int64
	Date            time.Time
	GeneratedAt     time.Time
	ResetApplied    bool
	Promoted        []int64
	Staff           []StaffRow
	Queue           []domain.QueueTicket
	LastQueueNumber int
}

// StaffRow строка мастера на доске
type StaffRow struct {
	StaffID          int64
	Name             string
	PriorityOrder    int
	Current          *domain.Booking
	Next             *domain.Booking
	CompletedToday   int
	RevenueToday     float64
	RevenueYesterday float64
	RevenueDiff      float64
	WorkedMinutes    int
}
