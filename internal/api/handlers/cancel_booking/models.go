package cancel_booking

import (
	uc "github.com/m04kA/SMC-SalonScheduler/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64) *uc.Request {
	return &uc.Request{
		BookingID: bookingID,
		Reason:    r.CancellationReason,
	}
}
