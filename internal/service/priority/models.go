package priority

import "github.com/m04kA/SMC-SalonScheduler/internal/domain"

// Entry мастер в списке приоритетов вместе с выручкой за рассматриваемый день
type Entry struct {
	StaffID       int64
	Name          string
	PriorityOrder int
	TieBreak      domain.TieBreakDirection
	Revenue       float64
}
