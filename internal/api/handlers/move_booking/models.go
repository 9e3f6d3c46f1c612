package move_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	moveBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/move_booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// MoveBookingRequest HTTP request model; незаданные поля не меняются
type MoveBookingRequest struct {
	StaffID   *int64  `json:"staffId,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveBookingRequest) ToUseCaseRequest(bookingID int64, loc *time.Location) (*moveBooking.Request, error) {
	req := &moveBooking.Request{
		BookingID: bookingID,
		StaffID:   r.StaffID,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date, loc)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}
