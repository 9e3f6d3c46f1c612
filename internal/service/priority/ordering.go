package priority

import (
	"sort"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// SortLive упорядочивает мастеров для доски смены: по приоритету,
// при равном приоритете первым идёт тот, кто сегодня заработал меньше.
// Сохранённое направление мастера здесь не учитывается
func SortLive(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.PriorityOrder != b.PriorityOrder {
			return a.PriorityOrder < b.PriorityOrder
		}
		if a.Revenue != b.Revenue {
			return a.Revenue < b.Revenue
		}
		return a.StaffID < b.StaffID
	})
}

// SortHistory упорядочивает мастеров для просмотра истории приоритетов.
// Группа с одинаковым приоритетом сортируется по выручке в направлении override,
// а если он не задан - в сохранённом направлении мастера с наименьшим ID в группе
func SortHistory(entries []Entry, override *domain.TieBreakDirection) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].PriorityOrder != entries[j].PriorityOrder {
			return entries[i].PriorityOrder < entries[j].PriorityOrder
		}
		return entries[i].StaffID < entries[j].StaffID
	})

	for start := 0; start < len(entries); {
		end := start + 1
		for end < len(entries) && entries[end].PriorityOrder == entries[start].PriorityOrder {
			end++
		}

		// Группа уже отсортирована по ID, первый элемент - наименьший ID
		direction := entries[start].TieBreak
		if override != nil {
			direction = *override
		}
		group := entries[start:end]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Revenue == group[j].Revenue {
				return false
			}
			if direction == domain.TieBreakDesc {
				return group[i].Revenue > group[j].Revenue
			}
			return group[i].Revenue < group[j].Revenue
		})

		start = end
	}
}

// resetOrder порядок ежедневного сброса: по вчерашней выручке по возрастанию,
// затем по текущему приоритету, затем по ID
func resetOrder(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Revenue != b.Revenue {
			return a.Revenue < b.Revenue
		}
		if a.PriorityOrder != b.PriorityOrder {
			return a.PriorityOrder < b.PriorityOrder
		}
		return a.StaffID < b.StaffID
	})
}
