package get_staff_bookings

import (
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidParams  = "некорректные параметры запроса, ожидается from/to в формате YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	now     func() time.Time
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/bookings
// Query params: from, to (YYYY-MM-DD, по умолчанию сегодня), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathID(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /staff/{id}/bookings - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	req, err := h.parseRequest(r, staffID)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListStaffRange(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /staff/{id}/bookings - Rejected: staff_id=%d: %v", staffID, err)
			return
		}
		h.logger.Error("GET /staff/{id}/bookings - Failed to get bookings: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/{id}/bookings - Bookings retrieved successfully: staff_id=%d, count=%d",
		staffID, len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingListResponse(result, h.service.Location()))
}

func (h *Handler) parseRequest(r *http.Request, staffID int64) (*models.StaffRangeRequest, error) {
	loc := h.service.Location()
	query := r.URL.Query()
	today := h.now().In(loc)

	req := &models.StaffRangeRequest{StaffID: staffID, From: today, To: today}

	if s := query.Get("from"); s != "" {
		from, err := handlers.ParseDate(s, loc)
		if err != nil {
			return nil, err
		}
		req.From = from
		req.To = from
	}
	if s := query.Get("to"); s != "" {
		to, err := handlers.ParseDate(s, loc)
		if err != nil {
			return nil, err
		}
		req.To = to
	}
	if s := query.Get("status"); s != "" {
		statuses, err := models.ParseStatuses(strings.Split(s, ","))
		if err != nil {
			return nil, err
		}
		req.Statuses = statuses
	}

	return req, nil
}
