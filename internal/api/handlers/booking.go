package handlers

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// BookingResponse бронирование в ответах API; время указано в часовом поясе салона
type BookingResponse struct {
	ID                 int64   `json:"id"`
	SalonID            int64   `json:"salonId"`
	StaffID            int64   `json:"staffId"`
	CustomerID         int64   `json:"customerId"`
	ServiceIDs         []int64 `json:"serviceIds"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	StartAt            string  `json:"startAt"`
	EndAt              string  `json:"endAt"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes,omitempty"`
	QueueNumber        *int    `json:"queueNumber,omitempty"`
	CheckedInAt        *string `json:"checkedInAt,omitempty"`
	StartedAt          *string `json:"startedAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	SourceBookingID    *int64  `json:"sourceBookingId,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// NewBookingResponse конвертирует бронирование в HTTP модель
func NewBookingResponse(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := b.StartAt.In(loc)
	end := b.EndAt.In(loc)

	return &BookingResponse{
		ID:                 b.ID,
		SalonID:            b.SalonID,
		StaffID:            b.StaffID,
		CustomerID:         b.CustomerID,
		ServiceIDs:         b.ServiceIDs,
		Date:               start.Format(domain.DateFormat),
		StartTime:          start.Format(domain.TimeFormat),
		EndTime:            end.Format(domain.TimeFormat),
		StartAt:            start.Format(time.RFC3339),
		EndAt:              end.Format(time.RFC3339),
		DurationMinutes:    int(b.Duration() / time.Minute),
		Status:             string(b.Status),
		Notes:              b.Notes,
		QueueNumber:        b.QueueNumber,
		CheckedInAt:        formatStamp(b.CheckedInAt, loc),
		StartedAt:          formatStamp(b.StartedAt, loc),
		CompletedAt:        formatStamp(b.CompletedAt, loc),
		CancelledAt:        formatStamp(b.CancelledAt, loc),
		CancellationReason: b.CancellationReason,
		SourceBookingID:    b.SourceBookingID,
		CreatedAt:          b.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}

// NewBookingListResponse конвертирует список бронирований
func NewBookingListResponse(bookings []*domain.Booking, loc *time.Location) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b, loc))
	}
	return out
}

func formatStamp(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}
