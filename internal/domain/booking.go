package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Actions used in InvalidStatusError
const (
	ActionCheckIn   = "check_in"
	ActionStart     = "start"
	ActionComplete  = "complete"
	ActionCancel    = "cancel"
	ActionMove      = "move"
	ActionDuplicate = "duplicate"
)

// Booking is a scheduled or completed appointment of one staff member.
// [StartAt, EndAt) is the interval the engine reasons about.
type Booking struct {
	ID         int64
	SalonID    int64
	StaffID    int64
	CustomerID int64
	ServiceIDs []int64
	StartAt    time.Time
	EndAt      time.Time
	Status     BookingStatus
	Notes      *string

	QueueNumber *int
	CheckInDate *time.Time
	CheckedInAt *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	CancelledAt        *time.Time
	CancellationReason *string

	// SourceBookingID is set for bookings created by the duplicate flow
	SourceBookingID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateServiceIDs checks the service list of a booking. Repeated IDs are rejected
func ValidateServiceIDs(ids []int64) error {
	if len(ids) == 0 {
		return NewValidationError("serviceIds", "at least one service is required")
	}
	if len(ids) > MaxServicesPerBooking {
		return NewValidationError("serviceIds", "too many services")
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return NewValidationError("serviceIds", "must be positive")
		}
		if _, ok := seen[id]; ok {
			return NewValidationError("serviceIds", "must be unique")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// IsActive returns true if the booking takes part in conflict and availability checks
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// Duration returns the booked length
func (b *Booking) Duration() time.Duration {
	return b.EndAt.Sub(b.StartAt)
}

// Overlaps reports whether the booking intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartAt, b.EndAt, start, end)
}

// CanCheckIn returns true if the customer can be checked in
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanStart returns true if the service can be started
func (b *Booking) CanStart() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}

// CanComplete returns true if the service can be completed
func (b *Booking) CanComplete() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn || b.Status == StatusInProgress
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}

// CanBeMoved returns true if the booking time or staff can be changed
func (b *Booking) CanBeMoved() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}

// IsDue returns true if a confirmed booking should already have started at now
func (b *Booking) IsDue(now time.Time) bool {
	return b.Status == StatusConfirmed && !b.StartAt.After(now)
}

// WorkedMinutes returns minutes between start and completion stamps of a completed booking
func (b *Booking) WorkedMinutes() int {
	if b.Status != StatusCompleted || b.StartedAt == nil || b.CompletedAt == nil {
		return 0
	}
	worked := b.CompletedAt.Sub(*b.StartedAt)
	if worked < 0 {
		return 0
	}
	return int(worked / time.Minute)
}

// BookingFilter selects bookings of a salon or a staff member in [From, To)
type BookingFilter struct {
	SalonID  int64           // 0 = any salon
	StaffID  *int64          // nil = every staff member
	From     time.Time       // inclusive, by start_at; zero = unbounded
	To       time.Time       // exclusive, by start_at; zero = unbounded
	Statuses []BookingStatus // empty = every active status

	// CheckInDate keeps bookings checked in on that salon-local day; nil = no check-in filter
	CheckInDate *time.Time
}
