package move_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	moveBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/move_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound           = "бронирование не найдено"
	msgStaffNotFound      = "мастер не найден"
	msgInPast             = "новое время бронирования уже прошло"
	msgOutsideWorkingTime = "мастер не работает в выбранное время"
)

type Handler struct {
	useCase MoveBookingUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase MoveBookingUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/move - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, h.loc)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/move - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /bookings/{id}/move - Rejected: booking_id=%d: %v", bookingID, err)

		case errors.Is(err, moveBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/move - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, moveBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/{id}/move - Staff not found: booking_id=%d, staff_id=%v", bookingID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, moveBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings/{id}/move - Target time in the past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInPast)

		case errors.Is(err, moveBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings/{id}/move - Outside working hours: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutsideWorkingTime)

		default:
			h.logger.Error("POST /bookings/{id}/move - Failed to move booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/move - Booking moved: booking_id=%d, staff_id=%d, start=%s",
		result.ID, result.StaffID, result.StartAt.In(h.loc).Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(result, h.loc))
}
