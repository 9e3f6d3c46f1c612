package set_priority

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
	msgEmptyRequest       = "укажите priorityOrder и (или) sortByRevenue"
	msgStaffNotFound      = "мастер не найден"
)

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

// Handle PUT /api/v1/staff/{staffId}/priority
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathID(r, "staffId")
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/priority - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req SetPriorityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/priority - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.PriorityOrder == nil && req.SortByRevenue == nil {
		handlers.RespondBadRequest(w, msgEmptyRequest)
		return
	}

	var result *domain.StaffPriority
	if req.PriorityOrder != nil {
		result, err = h.service.SetOrder(r.Context(), staffID, *req.PriorityOrder)
	}
	if err == nil && req.SortByRevenue != nil {
		result, err = h.service.SetTieBreak(r.Context(), staffID, domain.TieBreakDirection(*req.SortByRevenue))
	}
	if err != nil {
		switch {
		case handlers.RespondDomainError(w, err):
			h.logger.Warn("PUT /staff/{id}/priority - Rejected: staff_id=%d: %v", staffID, err)

		case errors.Is(err, priority.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{id}/priority - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("PUT /staff/{id}/priority - Failed: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/priority - Priority saved: staff_id=%d, order=%d, tie_break=%s",
		staffID, result.PriorityOrder, result.TieBreak)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}
