package salonhours

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

const keyPrefix = "salon:hours:"

// Provider отдаёт окно работы салона по умолчанию.
// Ответы SalonService кэшируются в Redis на ttl; без Redis каждый запрос идёт в сервис
type Provider struct {
	redis  *redis.Client
	client HoursClient
	ttl    time.Duration
	log    Logger
}

// NewProvider создает провайдер часов работы салона. rdb может быть nil
func NewProvider(rdb *redis.Client, client HoursClient, ttl time.Duration, log Logger) *Provider {
	return &Provider{
		redis:  rdb,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// DefaultWindow возвращает окно работы салона на день недели (0 = воскресенье).
// Ошибки: ErrNotConfigured, ErrClosed, ErrUnavailable
func (p *Provider) DefaultWindow(ctx context.Context, salonID int64, weekday int) (*domain.WorkWindow, error) {
	hours, err := p.hours(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	day, ok := hours.Day(weekday)
	if !ok {
		return nil, ErrNotConfigured
	}
	if day.Closed {
		return nil, ErrClosed
	}

	window, err := toWindow(day)
	if err != nil {
		p.log.Warn("DefaultWindow: invalid working hours salon_id=%d weekday=%d: %v", salonID, weekday, err)
		return nil, ErrNotConfigured
	}

	return window, nil
}

// Invalidate сбрасывает закэшированные часы работы салона
func (p *Provider) Invalidate(ctx context.Context, salonID int64) error {
	if p.redis == nil {
		return nil
	}
	return p.redis.Del(ctx, cacheKey(salonID)).Err()
}

func (p *Provider) hours(ctx context.Context, salonID int64) (*salonservice.WorkingHours, error) {
	if cached, ok := p.readCache(ctx, salonID); ok {
		return cached, nil
	}

	hours, err := p.client.ResolveWorkingHours(ctx, salonID)
	if err != nil {
		return nil, err
	}

	p.writeCache(ctx, salonID, hours)
	return hours, nil
}

func (p *Provider) readCache(ctx context.Context, salonID int64) (*salonservice.WorkingHours, bool) {
	if p.redis == nil || p.ttl <= 0 {
		return nil, false
	}

	val, err := p.redis.Get(ctx, cacheKey(salonID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.log.Warn("salonhours: cache read failed for salon_id=%d: %v", salonID, err)
		}
		return nil, false
	}

	var hours salonservice.WorkingHours
	if err := json.Unmarshal(val, &hours); err != nil {
		p.log.Warn("salonhours: corrupted cache entry for salon_id=%d: %v", salonID, err)
		return nil, false
	}

	return &hours, true
}

func (p *Provider) writeCache(ctx context.Context, salonID int64, hours *salonservice.WorkingHours) {
	if p.redis == nil || p.ttl <= 0 {
		return
	}

	data, err := json.Marshal(hours)
	if err != nil {
		return
	}

	if err := p.redis.Set(ctx, cacheKey(salonID), data, p.ttl).Err(); err != nil {
		p.log.Warn("salonhours: cache write failed for salon_id=%d: %v", salonID, err)
	}
}

func cacheKey(salonID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, salonID)
}

func toWindow(day *salonservice.DayOfWeek) (*domain.WorkWindow, error) {
	start, err := minutesOf(day.OpenTime)
	if err != nil {
		return nil, err
	}
	end, err := minutesOf(day.CloseTime)
	if err != nil {
		return nil, err
	}

	weekday := day.Weekday
	window := &domain.WorkWindow{
		Weekday:     &weekday,
		StartMinute: start,
		EndMinute:   end,
	}

	if day.BreakStart != nil && day.BreakEnd != nil {
		bs, err := minutesOf(*day.BreakStart)
		if err != nil {
			return nil, err
		}
		be, err := minutesOf(*day.BreakEnd)
		if err != nil {
			return nil, err
		}
		window.BreakStartMinute = &bs
		window.BreakEndMinute = &be
	}

	if err := window.Validate(); err != nil {
		return nil, err
	}

	return window, nil
}

func minutesOf(s string) (int, error) {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return 0, err
	}
	return ts.Minutes()
}
