package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/availability"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SalonID            int64           `json:"salonId"`
	StaffID            int64           `json:"staffId"`
	Date               string          `json:"date"`
	DurationMinutes    int             `json:"durationMinutes"`
	GranularityMinutes int             `json:"granularityMinutes"`
	Window             *WindowResponse `json:"window,omitempty"`
	Reason             string          `json:"reason,omitempty"`
	Slots              []SlotResponse  `json:"slots"`
}

// WindowResponse рабочее окно мастера на дату
type WindowResponse struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	Source     string  `json:"source"`
	Closed     bool    `json:"closed"`
}

// SlotResponse модель временного слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ToServiceRequest создает запрос к сервису из параметров запроса
func ToServiceRequest(salonID, staffID int64, serviceIDs []int64, date time.Time, granularity int, details bool) *availability.Request {
	return &availability.Request{
		SalonID:            salonID,
		StaffID:            staffID,
		ServiceIDs:         serviceIDs,
		Date:               date,
		GranularityMinutes: granularity,
		WithDetails:        details,
	}
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(res *availability.Result, loc *time.Location) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(res.Slots))
	for _, slot := range res.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.Start.In(loc).Format(domain.TimeFormat),
			EndTime:   slot.End.In(loc).Format(domain.TimeFormat),
			Available: slot.Available,
			Reason:    string(slot.Reason),
		})
	}

	return &AvailabilityResponse{
		SalonID:            res.SalonID,
		StaffID:            res.StaffID,
		Date:               res.Date.Format(domain.DateFormat),
		DurationMinutes:    res.DurationMinutes,
		GranularityMinutes: res.GranularityMinutes,
		Window:             fromWindow(res.Window),
		Reason:             string(res.Reason),
		Slots:              slots,
	}
}

func fromWindow(w *domain.EffectiveWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	resp := &WindowResponse{
		Source: string(w.Source),
		Closed: w.Closed,
	}
	if w.Closed {
		return resp
	}
	resp.Start = minuteString(w.StartMinute)
	resp.End = minuteString(w.EndMinute)
	if w.HasBreak() {
		bs := minuteString(*w.BreakStartMinute)
		be := minuteString(*w.BreakEndMinute)
		resp.BreakStart = &bs
		resp.BreakEnd = &be
	}
	return resp
}

func minuteString(minute int) string {
	ts, err := types.NewTimeStringFromMinutes(minute)
	if err != nil {
		return ""
	}
	return ts.String()
}
