package domain

import "time"

// QueueTicket is the queue position issued when a booking is checked in.
// Numbers are dense per salon and local date: 1..N in check-in order.
type QueueTicket struct {
	BookingID   int64
	SalonID     int64
	StaffID     int64
	CheckInDate time.Time
	QueueNumber int
	CheckedInAt time.Time
	StartAt     time.Time
}

// Ticket returns the queue ticket of a checked-in booking
func (b *Booking) Ticket() (QueueTicket, bool) {
	if b.QueueNumber == nil || b.CheckedInAt == nil || b.CheckInDate == nil {
		return QueueTicket{}, false
	}
	return QueueTicket{
		BookingID:   b.ID,
		SalonID:     b.SalonID,
		StaffID:     b.StaffID,
		CheckInDate: *b.CheckInDate,
		QueueNumber: *b.QueueNumber,
		CheckedInAt: *b.CheckedInAt,
		StartAt:     b.StartAt,
	}, true
}
