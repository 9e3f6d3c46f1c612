package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"a ends exactly when b starts", at(10, 0), at(10, 30), at(10, 30), at(11, 0), false},
		{"b ends exactly when a starts", at(11, 0), at(11, 30), at(10, 30), at(11, 0), false},
		{"a ends one minute after b starts", at(10, 0), at(10, 31), at(10, 30), at(11, 0), true},
		{"a contains b", at(9, 0), at(12, 0), at(10, 0), at(10, 30), true},
		{"identical", at(10, 0), at(10, 30), at(10, 0), at(10, 30), true},
		{"disjoint", at(9, 0), at(9, 30), at(14, 0), at(15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "must be symmetric")
		})
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	loc := time.FixedZone("salon", 7*60*60)
	ref := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	assert.Equal(t, 0, MinutesSinceMidnight(ref, ref))
	assert.Equal(t, 13*60+45, MinutesSinceMidnight(time.Date(2025, 6, 2, 13, 45, 0, 0, loc), ref))
	// 03:00 UTC is 10:00 in the salon zone
	assert.Equal(t, 10*60, MinutesSinceMidnight(time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC), ref))
	assert.Equal(t, 24*60+30, MinutesSinceMidnight(time.Date(2025, 6, 3, 0, 30, 0, 0, loc), ref))
}

func TestAtMinuteAndDayRange(t *testing.T) {
	loc := time.FixedZone("salon", 3*60*60)
	date := time.Date(2025, 6, 2, 15, 4, 5, 0, loc)

	assert.Equal(t, time.Date(2025, 6, 2, 9, 30, 0, 0, loc), AtMinute(date, 570))

	start, end := DayRange(date)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, loc), end)
}

func TestWorkWindow(t *testing.T) {
	bs, be := 12*60, 13*60
	w := WorkWindow{StartMinute: 9 * 60, EndMinute: 18 * 60, BreakStartMinute: &bs, BreakEndMinute: &be}
	date := at(0, 0)

	assert.NoError(t, w.Validate())
	assert.True(t, w.Accepts(date, at(9, 0), at(9, 30)))
	assert.True(t, w.Accepts(date, at(17, 30), at(18, 0)))
	assert.False(t, w.Accepts(date, at(17, 45), at(18, 15)), "runs past the window end")
	assert.False(t, w.Accepts(date, at(11, 45), at(12, 15)), "touches the break")
	assert.True(t, w.Accepts(date, at(11, 30), at(12, 0)), "ends when the break starts")

	badBreak := 8 * 60
	invalid := WorkWindow{StartMinute: 9 * 60, EndMinute: 18 * 60, BreakStartMinute: &badBreak, BreakEndMinute: &be}
	assert.ErrorIs(t, invalid.Validate(), ErrValidation)
	assert.ErrorIs(t, WorkWindow{StartMinute: 600, EndMinute: 600}.Validate(), ErrValidation)
}

func TestBooking_StatusTransitions(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.CanCheckIn())
	assert.True(t, b.CanStart())

	b.Status = StatusCompleted
	assert.False(t, b.CanCheckIn())
	assert.False(t, b.CanBeCancelled())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
	assert.False(t, b.CanComplete())
}

func TestBooking_WorkedMinutes(t *testing.T) {
	started, completed := at(10, 0), at(10, 47)
	b := &Booking{Status: StatusCompleted, StartedAt: &started, CompletedAt: &completed}
	assert.Equal(t, 47, b.WorkedMinutes())

	b.Status = StatusInProgress
	assert.Equal(t, 0, b.WorkedMinutes())
}

func TestErrorsMatch(t *testing.T) {
	var err error = &InvalidStatusError{BookingID: 1, Current: StatusCompleted, Action: ActionCheckIn}
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var statusErr *InvalidStatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, StatusCompleted, statusErr.Current)

	assert.ErrorIs(t, &ConflictError{StaffID: 3, Start: at(10, 0), End: at(10, 30)}, ErrConflict)
}
