package get_shift_board

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
)

const msgInvalidSalonID = "некорректный ID салона"

type Handler struct {
	service ShiftBoardService
	loc     *time.Location
	now     func() time.Time
	logger  Logger
}

func NewHandler(service ShiftBoardService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		now:     time.Now,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/shift-board
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/shift-board - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	board, err := h.service.BuildBoard(r.Context(), salonID, h.now())
	if err != nil {
		h.logger.Error("GET /salons/{id}/shift-board - Failed to build board: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/shift-board - salon_id=%d, staff=%d, queue=%d, promoted=%d",
		salonID, len(board.Staff), len(board.Queue), len(board.Promoted))
	handlers.RespondJSON(w, http.StatusOK, FromBoard(board, h.loc))
}
