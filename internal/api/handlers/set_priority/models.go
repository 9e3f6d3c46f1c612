package set_priority

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// SetPriorityRequest HTTP request model; хотя бы одно поле обязательно
type SetPriorityRequest struct {
	PriorityOrder *int    `json:"priorityOrder,omitempty"`
	SortByRevenue *string `json:"sortByRevenue,omitempty"` // asc | desc
}

// PriorityResponse приоритет мастера
type PriorityResponse struct {
	StaffID       int64  `json:"staffId"`
	SalonID       int64  `json:"salonId"`
	PriorityOrder int    `json:"priorityOrder"`
	SortByRevenue string `json:"sortByRevenue"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// FromDomain конвертирует приоритет в HTTP модель
func FromDomain(p *domain.StaffPriority) *PriorityResponse {
	resp := &PriorityResponse{
		StaffID:       p.StaffID,
		SalonID:       p.SalonID,
		PriorityOrder: p.PriorityOrder,
		SortByRevenue: string(p.TieBreak),
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
