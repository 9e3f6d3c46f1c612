package shiftboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Service собирает доску смены: кто сейчас работает, кто следующий, очередь пришедших клиентов
type Service struct {
	bookingRepo BookingRepository
	priorities  PriorityService
	revenue     RevenueReader
	queue       QueueCounter
	txManager   TxManager
	metrics     MetricsRecorder
	loc         *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса доски смены
func NewService(
	bookingRepo BookingRepository,
	priorities PriorityService,
	revenue RevenueReader,
	queue QueueCounter,
	txManager TxManager,
	metrics MetricsRecorder,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookingRepo: bookingRepo,
		priorities:  priorities,
		revenue:     revenue,
		queue:       queue,
		txManager:   txManager,
		metrics:     metrics,
		loc:         loc,
		logger:      logger,
	}
}

// BuildBoard собирает доску смены салона на момент now.
// Перед сборкой выполняет ежедневный сброс приоритетов и автозапуск подтверждённых записей,
// время начала которых уже наступило
func (s *Service) BuildBoard(ctx context.Context, salonID int64, now time.Time) (*Board, error) {
	now = now.In(s.loc)
	dayStart, dayEnd := domain.DayRange(domain.StartOfDay(now))

	s.logger.Info("BuildBoard: salon=%d, now=%s", salonID, now.Format(time.RFC3339))

	board := &Board{
		SalonID:     salonID,
		Date:        dayStart,
		GeneratedAt: now,
		Promoted:    []int64{},
		Staff:       []StaffRow{},
		Queue:       []domain.QueueTicket{},
	}

	// 1. Ежедневный сброс приоритетов
	applied, err := s.priorities.EnsureDailyReset(ctx, salonID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: BuildBoard - daily reset: %w", ErrInternal, err)
	}
	board.ResetApplied = applied

	// 2. Автозапуск записей, время которых наступило (только сегодняшние)
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		ids, err := s.bookingRepo.PromoteDue(ctx, salonID, dayStart, now)
		if err != nil {
			return err
		}
		board.Promoted = append(board.Promoted, ids...)
		return nil
	})
	if err != nil {
		s.logger.Error("BuildBoard: auto-promotion failed for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: BuildBoard - promote due bookings: %w", ErrInternal, err)
	}
	if len(board.Promoted) > 0 {
		s.logger.Info("BuildBoard: auto-started bookings %v", board.Promoted)
		if s.metrics != nil {
			s.metrics.AutoPromoted(len(board.Promoted))
		}
	}

	// 3. Мастера в живом порядке с сегодняшней выручкой
	entries, err := s.priorities.LiveOrder(ctx, salonID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: BuildBoard - live order: %w", ErrInternal, err)
	}

	yesterdayFrom, yesterdayTo := domain.DayRange(dayStart.AddDate(0, 0, -1))
	yesterday, err := s.revenue.SumPaidBySalon(ctx, salonID, yesterdayFrom, yesterdayTo)
	if err != nil {
		s.logger.Error("BuildBoard: failed to sum yesterday revenue for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: BuildBoard - yesterday revenue: %w", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{
		SalonID: salonID,
		From:    dayStart,
		To:      dayEnd,
	})
	if err != nil {
		s.logger.Error("BuildBoard: failed to list bookings for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: BuildBoard - list bookings: %w", ErrInternal, err)
	}
	byStaff := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		byStaff[b.StaffID] = append(byStaff[b.StaffID], b)
	}

	// 4. Строки мастеров
	for _, e := range entries {
		row := StaffRow{
			StaffID:          e.StaffID,
			Name:             e.Name,
			PriorityOrder:    e.PriorityOrder,
			RevenueToday:     e.Revenue,
			RevenueYesterday: yesterday[e.StaffID],
		}
		row.RevenueDiff = row.RevenueToday - row.RevenueYesterday
		fillStaffRow(&row, byStaff[e.StaffID], now)
		board.Staff = append(board.Staff, row)
	}

	// 5. Очередь пришедших сегодня клиентов по времени прихода.
	// Отбор по дате прихода, а не по start_at: клиент мог прийти раньше дня записи
	queued, err := s.bookingRepo.List(ctx, domain.BookingFilter{
		SalonID:     salonID,
		Statuses:    []domain.BookingStatus{domain.StatusCheckedIn},
		CheckInDate: &dayStart,
	})
	if err != nil {
		s.logger.Error("BuildBoard: failed to list queue for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: BuildBoard - list queue: %w", ErrInternal, err)
	}
	board.Queue = checkedInQueue(queued)

	board.LastQueueNumber, err = s.queue.Current(ctx, salonID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("%w: BuildBoard - queue counter: %w", ErrInternal, err)
	}

	return board, nil
}

// fillStaffRow заполняет текущую и следующую запись, число завершённых и отработанное время
func fillStaffRow(row *StaffRow, bookings []*domain.Booking, now time.Time) {
	for _, b := range bookings {
		switch b.Status {
		case domain.StatusInProgress:
			if row.Current == nil || b.StartAt.Before(row.Current.StartAt) {
				row.Current = b
			}
		case domain.StatusConfirmed:
			if b.StartAt.After(now) && (row.Next == nil || b.StartAt.Before(row.Next.StartAt)) {
				row.Next = b
			}
		case domain.StatusCompleted:
			row.CompletedToday++
			row.WorkedMinutes += b.WorkedMinutes()
		}
	}
}

// checkedInQueue клиенты в статусе CHECKED_IN по времени прихода, независимо от приоритета мастеров
func checkedInQueue(bookings []*domain.Booking) []domain.QueueTicket {
	queue := make([]domain.QueueTicket, 0)
	for _, b := range bookings {
		if b.Status != domain.StatusCheckedIn {
			continue
		}
		if ticket, ok := b.Ticket(); ok {
			queue = append(queue, ticket)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if !queue[i].CheckedInAt.Equal(queue[j].CheckedInAt) {
			return queue[i].CheckedInAt.Before(queue[j].CheckedInAt)
		}
		return queue[i].QueueNumber < queue[j].QueueNumber
	})

	return queue
}
