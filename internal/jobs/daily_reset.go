package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrListSalons возвращается, когда не удалось получить список салонов
var ErrListSalons = errors.New("jobs: failed to list salons")

// defaultRunTimeout ограничение на один проход сброса по всем салонам
const defaultRunTimeout = 2 * time.Minute

// DailyReset по расписанию запускает сброс приоритетов во всех салонах.
// Сброс идемпотентен в пределах дня, поэтому повторный запуск (рестарт, второй инстанс) безопасен
type DailyReset struct {
	salons     SalonLister
	priorities PriorityResetter
	loc        *time.Location
	now        func() time.Time
	timeout    time.Duration
	logger     Logger

	cron *cron.Cron
}

func NewDailyReset(salons SalonLister, priorities PriorityResetter, loc *time.Location, logger Logger) *DailyReset {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyReset{
		salons:     salons,
		priorities: priorities,
		loc:        loc,
		now:        time.Now,
		timeout:    defaultRunTimeout,
		logger:     logger,
	}
}

// RunOnce выполняет сброс для всех салонов на текущий день.
// Ошибка одного салона не останавливает остальные; возвращается число применённых сбросов
func (j *DailyReset) RunOnce(ctx context.Context) (int, error) {
	salonIDs, err := j.salons.ListSalonIDs(ctx)
	if err != nil {
		j.logger.Error("DailyReset: failed to list salons: %v", err)
		return 0, fmt.Errorf("%w: %w", ErrListSalons, err)
	}

	today := j.now().In(j.loc)
	applied := 0
	var errs []error
	for _, salonID := range salonIDs {
		ok, err := j.priorities.EnsureDailyReset(ctx, salonID, today)
		if err != nil {
			j.logger.Warn("DailyReset: salon=%d reset failed: %v", salonID, err)
			errs = append(errs, fmt.Errorf("salon %d: %w", salonID, err))
			continue
		}
		if ok {
			applied++
		}
	}

	j.logger.Info("DailyReset: checked %d salons, applied %d, failed %d", len(salonIDs), applied, len(errs))
	return applied, errors.Join(errs...)
}

// Start регистрирует задачу по cron выражению (5 полей) в часовом поясе салонов и запускает планировщик
func (j *DailyReset) Start(spec string) error {
	c := cron.New(cron.WithLocation(j.loc))
	if _, err := c.AddFunc(spec, j.run); err != nil {
		return fmt.Errorf("jobs: invalid cron spec %q: %w", spec, err)
	}
	c.Start()
	j.cron = c

	j.logger.Info("DailyReset: scheduled with spec=%q tz=%s", spec, j.loc)
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущего прохода
func (j *DailyReset) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.logger.Info("DailyReset: stopped")
}

func (j *DailyReset) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	// Ошибки уже залогированы по салонам
	_, _ = j.RunOnce(ctx)
}
