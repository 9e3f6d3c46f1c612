package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID    int64   `json:"salonId"`
	StaffID    int64   `json:"staffId"`
	CustomerID int64   `json:"customerId"`
	ServiceIDs []int64 `json:"serviceIds"`
	Date       string  `json:"date"`      // "2026-03-10"
	StartTime  string  `json:"startTime"` // "10:00"
	Status     string  `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		SalonID:    r.SalonID,
		StaffID:    r.StaffID,
		CustomerID: r.CustomerID,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		StartTime:  startTime,
		Status:     domain.BookingStatus(r.Status),
		Notes:      r.Notes,
	}, nil
}
