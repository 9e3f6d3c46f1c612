package priority

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	priorityRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/priority"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

// Service очередность обслуживания мастеров: ручная перестановка,
// ежедневный сброс по вчерашней выручке и живой порядок для доски смены
type Service struct {
	priorityRepo PriorityRepository
	staffReader  StaffReader
	revenue      RevenueReader
	txManager    TxManager
	metrics      MetricsRecorder
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса приоритетов
func NewService(
	priorityRepo PriorityRepository,
	staffReader StaffReader,
	revenue RevenueReader,
	txManager TxManager,
	metrics MetricsRecorder,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		priorityRepo: priorityRepo,
		staffReader:  staffReader,
		revenue:      revenue,
		txManager:    txManager,
		metrics:      metrics,
		loc:          loc,
		logger:       logger,
	}
}

// Swap меняет приоритет мастера с соседом сверху или снизу.
// Если соседнее значение никем не занято, ничего не меняется (swapped = false)
func (s *Service) Swap(ctx context.Context, staffID int64, direction domain.SwapDirection) (bool, error) {
	s.logger.Info("Swap: staff=%d, direction=%s", staffID, direction)

	if !direction.IsValid() {
		return false, domain.NewValidationError("direction", "must be up or down")
	}

	swapped := false
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Текущий приоритет мастера (строка блокируется)
		current, err := s.currentPriority(ctx, staffID)
		if err != nil {
			return err
		}

		// 2. Сосед на соседнем значении приоритета
		neighborOrder := direction.Neighbor(current.PriorityOrder)
		if neighborOrder < 1 {
			return nil
		}
		neighbor, err := s.priorityRepo.GetBySalonAndOrder(ctx, current.SalonID, neighborOrder)
		if err != nil {
			if errors.Is(err, priorityRepo.ErrPriorityNotFound) {
				return nil
			}
			return fmt.Errorf("%w: Swap - get neighbor: %w", ErrInternal, err)
		}

		// 3. Обмен значениями
		neighbor.PriorityOrder, current.PriorityOrder = current.PriorityOrder, neighborOrder
		if _, err := s.priorityRepo.Upsert(ctx, current); err != nil {
			return fmt.Errorf("%w: Swap - save staff priority: %w", ErrInternal, err)
		}
		if _, err := s.priorityRepo.Upsert(ctx, neighbor); err != nil {
			return fmt.Errorf("%w: Swap - save neighbor priority: %w", ErrInternal, err)
		}
		swapped = true
		return nil
	})
	if err != nil {
		s.logger.Error("Swap: staff=%d failed: %v", staffID, err)
		return false, err
	}

	if !swapped {
		s.logger.Info("Swap: staff=%d has no neighbor %s, nothing changed", staffID, direction)
	}
	return swapped, nil
}

// SetOrder явно задаёт приоритет мастера
func (s *Service) SetOrder(ctx context.Context, staffID int64, order int) (*domain.StaffPriority, error) {
	s.logger.Info("SetOrder: staff=%d, order=%d", staffID, order)

	if order < 1 {
		return nil, domain.NewValidationError("priorityOrder", "must be positive")
	}

	return s.update(ctx, staffID, func(p *domain.StaffPriority) {
		p.PriorityOrder = order
	})
}

// SetTieBreak задаёт направление сортировки по выручке при равном приоритете
func (s *Service) SetTieBreak(ctx context.Context, staffID int64, direction domain.TieBreakDirection) (*domain.StaffPriority, error) {
	s.logger.Info("SetTieBreak: staff=%d, direction=%s", staffID, direction)

	if !direction.IsValid() {
		return nil, domain.NewValidationError("sortByRevenue", "must be asc or desc")
	}

	return s.update(ctx, staffID, func(p *domain.StaffPriority) {
		p.TieBreak = direction
	})
}

func (s *Service) update(ctx context.Context, staffID int64, apply func(p *domain.StaffPriority)) (*domain.StaffPriority, error) {
	var saved *domain.StaffPriority
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		current, err := s.currentPriority(ctx, staffID)
		if err != nil {
			return err
		}

		apply(current)

		saved, err = s.priorityRepo.Upsert(ctx, current)
		if err != nil {
			return fmt.Errorf("%w: save priority: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("update: staff=%d failed: %v", staffID, err)
		return nil, err
	}

	return saved, nil
}

// currentPriority возвращает сохранённый приоритет мастера или приоритет по умолчанию
func (s *Service) currentPriority(ctx context.Context, staffID int64) (*domain.StaffPriority, error) {
	p, err := s.priorityRepo.GetByStaff(ctx, staffID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, priorityRepo.ErrPriorityNotFound) {
		return nil, fmt.Errorf("%w: get priority: %w", ErrInternal, err)
	}

	staff, err := s.staffReader.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: get staff: %w", ErrInternal, err)
	}

	return domain.DefaultPriority(staff.ID, staff.SalonID), nil
}

// EnsureDailyReset выполняет сброс приоритетов салона не чаще раза в календарный день.
// Маркер дня и новые приоритеты пишутся в одной транзакции.
// Мастера сортируются по вчерашней выручке по возрастанию: кто меньше заработал, обслуживает первым
func (s *Service) EnsureDailyReset(ctx context.Context, salonID int64, today time.Time) (bool, error) {
	day := domain.StartOfDay(today.In(s.loc))

	applied := false
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Маркер дня: если он уже есть, сброс сегодня был
		inserted, err := s.priorityRepo.InsertResetMarker(ctx, salonID, day)
		if err != nil {
			return fmt.Errorf("%w: insert reset marker: %w", ErrInternal, err)
		}
		if !inserted {
			return nil
		}

		// 2. Мастера салона с текущими приоритетами и вчерашней выручкой
		entries, err := s.entries(ctx, salonID, day.AddDate(0, 0, -1))
		if err != nil {
			return err
		}

		// 3. Новые приоритеты 1..N
		resetOrder(entries)
		for i, e := range entries {
			p := &domain.StaffPriority{
				StaffID:       e.StaffID,
				SalonID:       salonID,
				PriorityOrder: i + 1,
				TieBreak:      e.TieBreak,
			}
			if _, err := s.priorityRepo.Upsert(ctx, p); err != nil {
				return fmt.Errorf("%w: save priority staff=%d: %w", ErrInternal, e.StaffID, err)
			}
		}

		applied = true
		s.logger.Info("EnsureDailyReset: salon=%d date=%s reassigned %d staff",
			salonID, day.Format(domain.DateFormat), len(entries))
		return nil
	})
	if err != nil {
		// Конкурентный сброс того же дня мог успеть раньше: тогда это не ошибка
		if txmanager.IsRetryable(err) {
			done, checkErr := s.priorityRepo.HasResetMarker(ctx, salonID, day)
			if checkErr == nil && done {
				s.logger.Warn("EnsureDailyReset: salon=%d concurrent reset already applied", salonID)
				s.recordReset(false)
				return false, nil
			}
		}
		s.logger.Error("EnsureDailyReset: salon=%d failed: %v", salonID, err)
		return false, err
	}

	s.recordReset(applied)
	return applied, nil
}

func (s *Service) recordReset(applied bool) {
	if s.metrics != nil {
		s.metrics.DailyReset(applied)
	}
}

// LiveOrder порядок мастеров для доски смены с выручкой на текущий момент дня now
func (s *Service) LiveOrder(ctx context.Context, salonID int64, now time.Time) ([]Entry, error) {
	entries, err := s.entries(ctx, salonID, domain.StartOfDay(now.In(s.loc)))
	if err != nil {
		s.logger.Error("LiveOrder: salon=%d failed: %v", salonID, err)
		return nil, err
	}

	SortLive(entries)
	return entries, nil
}

// History приоритеты мастеров с выручкой за date.
// Равные приоритеты сортируются по выручке в сохранённом направлении или в направлении override
func (s *Service) History(ctx context.Context, salonID int64, date time.Time, override *domain.TieBreakDirection) ([]Entry, error) {
	if override != nil && !override.IsValid() {
		return nil, domain.NewValidationError("sortByRevenue", "must be asc or desc")
	}

	entries, err := s.entries(ctx, salonID, domain.StartOfDay(date.In(s.loc)))
	if err != nil {
		s.logger.Error("History: salon=%d failed: %v", salonID, err)
		return nil, err
	}

	SortHistory(entries, override)
	return entries, nil
}

// entries собирает активных мастеров салона с приоритетами и выручкой за календарный день day
func (s *Service) entries(ctx context.Context, salonID int64, day time.Time) ([]Entry, error) {
	staff, err := s.staffReader.ListStaff(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("%w: list staff: %w", ErrInternal, err)
	}

	priorities, err := s.priorityRepo.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("%w: list priorities: %w", ErrInternal, err)
	}
	byStaff := make(map[int64]*domain.StaffPriority, len(priorities))
	for _, p := range priorities {
		byStaff[p.StaffID] = p
	}

	from, to := domain.DayRange(day)
	revenue, err := s.revenue.SumPaidBySalon(ctx, salonID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: sum revenue: %w", ErrInternal, err)
	}

	entries := make([]Entry, 0, len(staff))
	for _, st := range staff {
		p, ok := byStaff[st.ID]
		if !ok {
			p = domain.DefaultPriority(st.ID, salonID)
		}
		entries = append(entries, Entry{
			StaffID:       st.ID,
			Name:          st.Name,
			PriorityOrder: p.PriorityOrder,
			TieBreak:      p.TieBreak,
			Revenue:       revenue[st.ID],
		})
	}

	return entries, nil
}
