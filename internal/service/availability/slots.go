package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

const minutesPerDay = 24 * 60

// slotScan результат перебора кандидатов за сутки
type slotScan struct {
	available []domain.Slot
	all       []domain.Slot
	// inWindow - кандидаты, прошедшие фильтр по времени и окну работы
	inWindow int
}

// scanSlots перебирает кандидатов с шагом granularity по всем суткам date.
// Кандидат отбрасывается молча, если он раньше cutoff или не помещается в окно работы.
// Кандидаты, задевающие перерыв или активное бронирование, помечаются причиной исключения
func scanSlots(
	date time.Time,
	window domain.EffectiveWindow,
	bookings []*domain.Booking,
	durationMinutes int,
	granularity int,
	cutoff time.Time,
) *slotScan {
	scan := &slotScan{}
	duration := time.Duration(durationMinutes) * time.Minute

	for minute := 0; minute < minutesPerDay; minute += granularity {
		start := domain.AtMinute(date, minute)
		end := start.Add(duration)

		// Шаг 1: прошедшее время (с учётом минимального времени до записи)
		if start.Before(cutoff) {
			continue
		}

		// Шаг 2: окно работы
		if window.Closed || !window.Contains(date, start, end) {
			continue
		}
		scan.inWindow++

		slot := domain.Slot{Start: start, End: end}

		// Шаг 3: перерыв
		if window.OverlapsBreak(date, start, end) {
			slot.Reason = domain.ExcludedBreak
			scan.add(slot)
			continue
		}

		// Шаг 4: бронирования
		if overlapsAny(start, end, bookings) {
			slot.Reason = domain.ExcludedBooked
			scan.add(slot)
			continue
		}

		slot.Available = true
		scan.add(slot)
	}

	return scan
}

func (s *slotScan) add(slot domain.Slot) {
	s.all = append(s.all, slot)
	if slot.Available {
		s.available = append(s.available, slot)
	}
}

// slots возвращает доступные слоты или все слоты с причинами исключения
func (s *slotScan) slots(withDetails bool) []domain.Slot {
	src := s.available
	if withDetails {
		src = s.all
	}
	out := make([]domain.Slot, len(src))
	copy(out, src)
	return out
}

// reason объясняет пустой результат: ALL_BOOKED, если кандидаты в окне были, но все исключены,
// NOT_WORKING, если в окне не оказалось ни одного кандидата
func (s *slotScan) reason() domain.AvailabilityReason {
	switch {
	case len(s.available) > 0:
		return domain.ReasonNone
	case s.inWindow > 0:
		return domain.ReasonAllBooked
	default:
		return domain.ReasonNotWorking
	}
}

func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsActive() && domain.Overlaps(start, end, b.StartAt, b.EndAt) {
			return true
		}
	}
	return false
}
