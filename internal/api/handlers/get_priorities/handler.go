package get_priorities

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/priority"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// PriorityEntryResponse мастер в списке приоритетов
type PriorityEntryResponse struct {
	StaffID       int64   `json:"staffId"`
	Name          string  `json:"name"`
	PriorityOrder int     `json:"priorityOrder"`
	SortByRevenue string  `json:"sortByRevenue"`
	Revenue       float64 `json:"revenue"`
}

// PrioritiesResponse HTTP response model
type PrioritiesResponse struct {
	SalonID int64                   `json:"salonId"`
	Date    string                  `json:"date"`
	Staff   []PriorityEntryResponse `json:"staff"`
}

type Handler struct {
	service PriorityService
	loc     *time.Location
	now     func() time.Time
	logger  Logger
}

func NewHandler(service PriorityService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		now:     time.Now,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/priorities
// Query params: date (по умолчанию сегодня), sortByRevenue=asc|desc (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/priorities - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	query := r.URL.Query()
	date := h.now().In(h.loc)
	if s := query.Get("date"); s != "" {
		date, err = handlers.ParseDate(s, h.loc)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/priorities - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	var override *domain.TieBreakDirection
	if s := query.Get("sortByRevenue"); s != "" {
		direction := domain.TieBreakDirection(s)
		override = &direction
	}

	entries, err := h.service.History(r.Context(), salonID, date, override)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /salons/{id}/priorities - Rejected: salon_id=%d: %v", salonID, err)
			return
		}
		h.logger.Error("GET /salons/{id}/priorities - Failed: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/priorities - salon_id=%d, date=%s, staff=%d",
		salonID, date.Format(domain.DateFormat), len(entries))
	handlers.RespondJSON(w, http.StatusOK, FromEntries(salonID, date, entries))
}

// FromEntries конвертирует список приоритетов в HTTP модель
func FromEntries(salonID int64, date time.Time, entries []priority.Entry) *PrioritiesResponse {
	staff := make([]PriorityEntryResponse, 0, len(entries))
	for _, e := range entries {
		staff = append(staff, PriorityEntryResponse{
			StaffID:       e.StaffID,
			Name:          e.Name,
			PriorityOrder: e.PriorityOrder,
			SortByRevenue: string(e.TieBreak),
			Revenue:       e.Revenue,
		})
	}
	return &PrioritiesResponse{
		SalonID: salonID,
		Date:    date.Format(domain.DateFormat),
		Staff:   staff,
	}
}
