package salonservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// maxErrorBody ограничивает чтение тела ошибки
const maxErrorBody = 4 << 10

// Client клиент SalonService.
// После сбоя сервиса клиент на время cooldown не отправляет запросы и сразу отвечает ErrServiceDegraded
type Client struct {
	base     *url.URL
	http     *http.Client
	cooldown time.Duration
	now      func() time.Time
	log      Logger

	mu        sync.Mutex
	downUntil time.Time
}

// NewClient создает клиент SalonService. baseURL должен быть абсолютным http(s) адресом
func NewClient(baseURL string, timeout time.Duration, log Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base url: %w", ErrInternal, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: base url %q must be absolute http(s)", ErrInternal, baseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		now:  time.Now,
		log:  log,
	}, nil
}

// WithCooldown задаёт паузу после сбоя сервиса; 0 отключает паузу
func (c *Client) WithCooldown(d time.Duration) *Client {
	c.cooldown = d
	return c
}

// GetWorkingHours получает часы работы салона по умолчанию
func (c *Client) GetWorkingHours(ctx context.Context, salonID int64) (*WorkingHours, error) {
	var hours WorkingHours
	if err := c.getJSON(ctx, &hours, "internal", "salons", strconv.FormatInt(salonID, 10), "working-hours"); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: salon_id=%d", ErrSalonNotFound, salonID)
		}
		return nil, err
	}
	if hours.SalonID == 0 {
		hours.SalonID = salonID
	}
	return &hours, nil
}

// ResolveWorkingHours возвращает часы работы салона для расчёта окна.
// Неизвестный салон означает, что часы не настроены: возвращается пустое расписание.
// Любой другой сбой (включая паузу после сбоя) возвращается как ErrServiceDegraded,
// и вызывающий переходит на окно по умолчанию
func (c *Client) ResolveWorkingHours(ctx context.Context, salonID int64) (*WorkingHours, error) {
	if until, down := c.isDown(); down {
		return nil, fmt.Errorf("%w: salon_id=%d, paused until %s", ErrServiceDegraded, salonID, until.Format(time.RFC3339))
	}

	hours, err := c.GetWorkingHours(ctx, salonID)
	switch {
	case err == nil:
		return hours, nil
	case errors.Is(err, ErrSalonNotFound):
		c.log.Warn("SalonService has no working hours for salon_id=%d", salonID)
		return &WorkingHours{SalonID: salonID}, nil
	case ctx.Err() != nil:
		// Отмена запроса вызывающим не говорит о здоровье сервиса
		return nil, fmt.Errorf("%w: salon_id=%d: %w", ErrServiceDegraded, salonID, err)
	}

	c.markDown()
	c.log.Error("SalonService unavailable for salon_id=%d, using default window: %v", salonID, err)
	return nil, fmt.Errorf("%w: salon_id=%d: %w", ErrServiceDegraded, salonID, err)
}

// getJSON выполняет GET base/elems... и декодирует ответ 200 в dst.
// Ответ с другим кодом возвращается как *StatusError
func (c *Client) getJSON(ctx context.Context, dst any, elems ...string) error {
	endpoint := c.base.JoinPath(elems...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrUnavailable, endpoint.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newStatusError(endpoint.Path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrInvalidResponse, endpoint.Path, err)
	}
	return nil
}

func newStatusError(path string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	se := &StatusError{Path: path, Code: resp.StatusCode}
	var payload ErrorResponse
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		se.Message = payload.Message
	} else {
		se.Message = string(body)
	}
	return se
}

func (c *Client) isDown() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downUntil, c.now().Before(c.downUntil)
}

func (c *Client) markDown() {
	if c.cooldown <= 0 {
		return
	}
	c.mu.Lock()
	c.downUntil = c.now().Add(c.cooldown)
	c.mu.Unlock()
}
