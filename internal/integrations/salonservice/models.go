package salonservice

// WorkingHours часы работы салона по дням недели
type WorkingHours struct {
	SalonID int64       `json:"salon_id"`
	Days    []DayOfWeek `json:"days"`
}

// DayOfWeek часы работы салона в один день недели (0 = воскресенье)
type DayOfWeek struct {
	Weekday    int     `json:"weekday"`
	Closed     bool    `json:"closed"`
	OpenTime   string  `json:"open_time,omitempty"`   // HH:MM
	CloseTime  string  `json:"close_time,omitempty"`  // HH:MM
	BreakStart *string `json:"break_start,omitempty"` // HH:MM
	BreakEnd   *string `json:"break_end,omitempty"`   // HH:MM
}

// Day возвращает часы работы на день недели
func (h *WorkingHours) Day(weekday int) (*DayOfWeek, bool) {
	for i := range h.Days {
		if h.Days[i].Weekday == weekday {
			return &h.Days[i], true
		}
	}
	return nil, false
}

// IsConfigured возвращает true, если у салона заданы часы работы хотя бы на один день
func (h *WorkingHours) IsConfigured() bool {
	return len(h.Days) > 0
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
