package swap_priority

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/priority"
)

const (
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStaffNotFound      = "мастер не найден"
)

// SwapRequest HTTP request model
type SwapRequest struct {
	Direction string `json:"direction"` // up | down
}

// SwapResponse результат обмена; swapped = false, если соседа нет
type SwapResponse struct {
	StaffID   int64  `json:"staffId"`
	Direction string `json:"direction"`
	Swapped   bool   `json:"swapped"`
}

type Handler struct {
	service PriorityService
	logger  Logger
}

func NewHandler(service PriorityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/{staffId}/priority/swap
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathID(r, "staffId")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/priority/swap - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req SwapRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/priority/swap - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	swapped, err := h.service.Swap(r.Context(), staffID, domain.SwapDirection(req.Direction))
	if err != nil {
		switch {
		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /staff/{id}/priority/swap - Rejected: staff_id=%d: %v", staffID, err)

		case errors.Is(err, priority.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/priority/swap - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("POST /staff/{id}/priority/swap - Failed: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/priority/swap - staff_id=%d, direction=%s, swapped=%t", staffID, req.Direction, swapped)
	handlers.RespondJSON(w, http.StatusOK, SwapResponse{StaffID: staffID, Direction: req.Direction, Swapped: swapped})
}
