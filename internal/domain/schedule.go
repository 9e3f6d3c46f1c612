package domain

import "time"

// WindowSource tells where an effective work window came from
type WindowSource string

const (
	WindowSourceDate     WindowSource = "date"
	WindowSourceWeekday  WindowSource = "weekday"
	WindowSourceSalon    WindowSource = "salon"
	WindowSourceFallback WindowSource = "fallback"
)

// WorkWindow is a contiguous working interval of a staff member on one day,
// expressed in minutes since local midnight, with an optional break.
// Recurring windows carry Weekday (0 = Sunday), date-specific windows carry Date.
type WorkWindow struct {
	StaffID          int64
	Weekday          *int
	Date             *time.Time
	StartMinute      int
	EndMinute        int
	BreakStartMinute *int
	BreakEndMinute   *int
}

// HasBreak returns true if the window has a break
func (w WorkWindow) HasBreak() bool {
	return w.BreakStartMinute != nil && w.BreakEndMinute != nil
}

// Validate checks window invariants
func (w WorkWindow) Validate() error {
	if w.StartMinute < 0 || w.EndMinute > minutesPerDay || w.StartMinute >= w.EndMinute {
		return NewValidationError("workWindow", "start must be before end within one day")
	}
	if (w.BreakStartMinute == nil) != (w.BreakEndMinute == nil) {
		return NewValidationError("workWindow", "break needs both start and end")
	}
	if w.HasBreak() {
		bs, be := *w.BreakStartMinute, *w.BreakEndMinute
		if bs < w.StartMinute || bs >= be || be > w.EndMinute {
			return NewValidationError("workWindow", "break must lie inside the window")
		}
	}
	return nil
}

// Bounds returns the window as absolute instants on date
func (w WorkWindow) Bounds(date time.Time) (time.Time, time.Time) {
	return AtMinute(date, w.StartMinute), AtMinute(date, w.EndMinute)
}

// BreakBounds returns the break as absolute instants on date
func (w WorkWindow) BreakBounds(date time.Time) (time.Time, time.Time, bool) {
	if !w.HasBreak() {
		return time.Time{}, time.Time{}, false
	}
	return AtMinute(date, *w.BreakStartMinute), AtMinute(date, *w.BreakEndMinute), true
}

// Contains reports whether [start, end) lies within the window on date
func (w WorkWindow) Contains(date, start, end time.Time) bool {
	ws, we := w.Bounds(date)
	return !start.Before(ws) && !end.After(we)
}

// OverlapsBreak reports whether [start, end) intersects the break on date
func (w WorkWindow) OverlapsBreak(date, start, end time.Time) bool {
	bs, be, ok := w.BreakBounds(date)
	return ok && Overlaps(start, end, bs, be)
}

// Accepts reports whether [start, end) fits the window and misses the break
func (w WorkWindow) Accepts(date, start, end time.Time) bool {
	return w.Contains(date, start, end) && !w.OverlapsBreak(date, start, end)
}

// EffectiveWindow is the window resolved for a staff member and date.
// Closed is set when the salon's configured hours mark the day as a day off.
type EffectiveWindow struct {
	WorkWindow
	Source WindowSource
	Closed bool
}

// IsFallback returns true if the window is the hard-coded default
func (w EffectiveWindow) IsFallback() bool {
	return w.Source == WindowSourceFallback
}

// ClosedWindow is the effective window of a day off
func ClosedWindow(staffID int64, source WindowSource) EffectiveWindow {
	return EffectiveWindow{
		WorkWindow: WorkWindow{StaffID: staffID},
		Source:     source,
		Closed:     true,
	}
}

// FallbackWindow is used when neither the staff member nor the salon has configured hours
func FallbackWindow(staffID int64) EffectiveWindow {
	return EffectiveWindow{
		WorkWindow: WorkWindow{
			StaffID:     staffID,
			StartMinute: FallbackStartMinute,
			EndMinute:   FallbackEndMinute,
		},
		Source: WindowSourceFallback,
	}
}

// Staff is a bookable staff member of a salon
type Staff struct {
	ID       int64
	SalonID  int64
	Name     string
	IsActive bool
}

// Service is a salon service with its default duration
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	DurationMinutes int
	Price           float64
}
