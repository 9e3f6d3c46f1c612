package get_shift_board

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/shiftboard"
)

// BoardResponse HTTP response model доски смены
type BoardResponse struct {
	SalonID         int64                 `json:"salonId"`
	Date            string                `json:"date"`
	GeneratedAt     string                `json:"generatedAt"`
	ResetApplied    bool                  `json:"resetApplied"`
	Promoted        []int64               `json:"promoted"`
	Staff           []StaffRowResponse    `json:"staff"`
	Queue           []QueueTicketResponse `json:"queue"`
	LastQueueNumber int                   `json:"lastQueueNumber"`
}

// StaffRowResponse строка мастера
type StaffRowResponse struct {
	StaffID          int64                     `json:"staffId"`
	Name             string                    `json:"name"`
	PriorityOrder    int                       `json:"priorityOrder"`
	Current          *handlers.BookingResponse `json:"current,omitempty"`
	Next             *handlers.BookingResponse `json:"next,omitempty"`
	CompletedToday   int                       `json:"completedToday"`
	RevenueToday     float64                   `json:"revenueToday"`
	RevenueYesterday float64                   `json:"revenueYesterday"`
	RevenueDiff      float64                   `json:"revenueDiff"`
	WorkedMinutes    int                       `json:"workedMinutes"`
}

// QueueTicketResponse клиент в очереди пришедших
type QueueTicketResponse struct {
	BookingID   int64  `json:"bookingId"`
	StaffID     int64  `json:"staffId"`
	QueueNumber int    `json:"queueNumber"`
	CheckedInAt string `json:"checkedInAt"`
	StartTime   string `json:"startTime"`
}

// FromBoard конвертирует доску смены в HTTP модель
func FromBoard(b *shiftboard.Board, loc *time.Location) *BoardResponse {
	resp := &BoardResponse{
		SalonID:         b.SalonID,
		Date:            b.Date.Format(domain.DateFormat),
		GeneratedAt:     b.GeneratedAt.In(loc).Format(time.RFC3339),
		ResetApplied:    b.ResetApplied,
		Promoted:        b.Promoted,
		Staff:           make([]StaffRowResponse, 0, len(b.Staff)),
		Queue:           make([]QueueTicketResponse, 0, len(b.Queue)),
		LastQueueNumber: b.LastQueueNumber,
	}
	if resp.Promoted == nil {
		resp.Promoted = []int64{}
	}

	for _, row := range b.Staff {
		resp.Staff = append(resp.Staff, StaffRowResponse{
			StaffID:          row.StaffID,
			Name:             row.Name,
			PriorityOrder:    row.PriorityOrder,
			Current:          handlers.NewBookingResponse(row.Current, loc),
			Next:             handlers.NewBookingResponse(row.Next, loc),
			CompletedToday:   row.CompletedToday,
			RevenueToday:     row.RevenueToday,
			RevenueYesterday: row.RevenueYesterday,
			RevenueDiff:      row.RevenueDiff,
			WorkedMinutes:    row.WorkedMinutes,
		})
	}

	for _, ticket := range b.Queue {
		resp.Queue = append(resp.Queue, QueueTicketResponse{
			BookingID:   ticket.BookingID,
			StaffID:     ticket.StaffID,
			QueueNumber: ticket.QueueNumber,
			CheckedInAt: ticket.CheckedInAt.In(loc).Format(time.RFC3339),
			StartTime:   ticket.StartAt.In(loc).Format(domain.TimeFormat),
		})
	}

	return resp
}
