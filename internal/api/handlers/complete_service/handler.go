package complete_service

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	uc "github.com/m04kA/SMC-SalonScheduler/internal/usecase/complete_service"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	useCase UseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase UseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &uc.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /bookings/{id}/complete - Rejected: booking_id=%d: %v", bookingID, err)

		case errors.Is(err, uc.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/complete - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /bookings/{id}/complete - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/complete - Service completed: booking_id=%d, staff_id=%d", result.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(result, h.loc))
}
