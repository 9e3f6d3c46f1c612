package domain

import "time"

const minutesPerDay = 24 * 60

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
// Intervals that only touch (a ends exactly when b starts) do not overlap.
// This is the single overlap predicate used by availability, conflict checks and breaks.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MinutesSinceMidnight converts t to minutes since local midnight of referenceDate,
// measured on the wall clock of referenceDate's location.
// A timestamp on the following day yields a value >= 1440.
func MinutesSinceMidnight(t time.Time, referenceDate time.Time) int {
	local := t.In(referenceDate.Location())
	days := civilDaysBetween(referenceDate, local)
	return days*minutesPerDay + local.Hour()*60 + local.Minute()
}

// AtMinute returns the instant `minute` minutes after local midnight of date.
func AtMinute(date time.Time, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, minute, 0, 0, date.Location())
}

// StartOfDay returns local midnight of t.
func StartOfDay(t time.Time) time.Time {
	return AtMinute(t, 0)
}

// DayRange returns [midnight, next midnight) of t's local day.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func civilDaysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
