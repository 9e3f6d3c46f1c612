package domain

import "time"

// DefaultPriorityOrder is used for staff members that never had an order assigned
const DefaultPriorityOrder = 999

// TieBreakDirection orders staff with equal priority by revenue
type TieBreakDirection string

const (
	TieBreakAsc  TieBreakDirection = "asc"
	TieBreakDesc TieBreakDirection = "desc"
)

// IsValid returns true for known directions
func (d TieBreakDirection) IsValid() bool {
	return d == TieBreakAsc || d == TieBreakDesc
}

// SwapDirection moves a staff member one place up (served earlier) or down
type SwapDirection string

const (
	SwapUp   SwapDirection = "up"
	SwapDown SwapDirection = "down"
)

// IsValid returns true for known directions
func (d SwapDirection) IsValid() bool {
	return d == SwapUp || d == SwapDown
}

// Neighbor returns the order value the swap partner must hold
func (d SwapDirection) Neighbor(order int) int {
	if d == SwapUp {
		return order - 1
	}
	return order + 1
}

// StaffPriority is the service priority of a staff member; smaller order is served first
type StaffPriority struct {
	StaffID       int64
	SalonID       int64
	PriorityOrder int
	TieBreak      TieBreakDirection
	UpdatedAt     time.Time
}

// DefaultPriority returns the priority of a staff member without a stored row
func DefaultPriority(staffID, salonID int64) *StaffPriority {
	return &StaffPriority{
		StaffID:       staffID,
		SalonID:       salonID,
		PriorityOrder: DefaultPriorityOrder,
		TieBreak:      TieBreakAsc,
	}
}

// DailyResetMarker guards the daily priority reset; at most one per salon and date
type DailyResetMarker struct {
	SalonID   int64
	ResetDate time.Time
	CreatedAt time.Time
}
