package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Service выдаёт номера живой очереди салона.
// Номера уникальны и идут подряд в пределах (салон, календарный день салона)
type Service struct {
	counterRepo CounterRepository
	metrics     MetricsRecorder
	loc         *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса очереди
func NewService(counterRepo CounterRepository, metrics MetricsRecorder, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		counterRepo: counterRepo,
		metrics:     metrics,
		loc:         loc,
		logger:      logger,
	}
}

// Next атомарно выдаёт следующий номер очереди салона на день localDate.
// Вызывается внутри транзакции check-in: при откате транзакции номер не расходуется
func (s *Service) Next(ctx context.Context, salonID int64, localDate time.Time) (int, error) {
	day := s.LocalDate(localDate)

	number, err := s.counterRepo.Increment(ctx, salonID, day)
	if err != nil {
		s.logger.Error("Next: failed to increment counter salon=%d date=%s: %v",
			salonID, day.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: Next - increment counter: %w", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.QueueNumberIssued()
	}
	s.logger.Info("Next: issued queue number %d for salon=%d date=%s", number, salonID, day.Format(domain.DateFormat))

	return number, nil
}

// Current возвращает последний выданный номер (0, если в этот день номеров не выдавалось)
func (s *Service) Current(ctx context.Context, salonID int64, localDate time.Time) (int, error) {
	day := s.LocalDate(localDate)

	number, err := s.counterRepo.Current(ctx, salonID, day)
	if err != nil {
		s.logger.Error("Current: failed to read counter salon=%d date=%s: %v",
			salonID, day.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: Current - read counter: %w", ErrInternal, err)
	}

	return number, nil
}

// LocalDate полночь календарного дня t в часовом поясе салона.
// Граница очереди - локальная полночь, а не UTC
func (s *Service) LocalDate(t time.Time) time.Time {
	return domain.StartOfDay(t.In(s.loc))
}
