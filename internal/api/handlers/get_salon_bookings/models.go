package get_salon_bookings

import (
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date по умолчанию - сегодня по времени салона, status - список через запятую
func ToServiceRequest(salonID int64, query url.Values, now time.Time, loc *time.Location) (*models.SalonDayRequest, error) {
	req := &models.SalonDayRequest{
		SalonID: salonID,
		Date:    now.In(loc),
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := handlers.ParseDate(dateStr, loc)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	staffID, err := handlers.ParseOptionalID(query.Get("staffId"))
	if err != nil {
		return nil, err
	}
	req.StaffID = staffID

	if statusStr := query.Get("status"); statusStr != "" {
		statuses, err := models.ParseStatuses(strings.Split(statusStr, ","))
		if err != nil {
			return nil, err
		}
		req.Statuses = statuses
	}

	return req, nil
}
