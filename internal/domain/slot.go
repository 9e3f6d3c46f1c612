package domain

import "time"

// ExclusionReason explains why a candidate start time is not offered
type ExclusionReason string

const (
	ExcludedBreak  ExclusionReason = "break"
	ExcludedBooked ExclusionReason = "booked"
)

// AvailabilityReason explains an empty slot list
type AvailabilityReason string

const (
	ReasonNone       AvailabilityReason = ""
	ReasonAllBooked  AvailabilityReason = "ALL_BOOKED"
	ReasonNotWorking AvailabilityReason = "NOT_WORKING"
	ReasonNoStaff    AvailabilityReason = "NO_STAFF"
)

// Slot is a candidate start time for a booking of a given length
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
	Reason    ExclusionReason // set only for excluded candidates
}
