// Package usecasetest содержит in-memory реализации зависимостей use case'ов для тестов
package usecasetest

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
)

// BookingStore хранилище бронирований в памяти. Возвращает копии, как настоящий репозиторий
type BookingStore struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	nextID   int64

	Creates int
	Updates int
}

// NewBookingStore создает хранилище с начальными бронированиями
func NewBookingStore(bookings ...*domain.Booking) *BookingStore {
	s := &BookingStore{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		cp := *b
		s.bookings[b.ID] = &cp
		if b.ID > s.nextID {
			s.nextID = b.ID
		}
	}
	return s
}

func (s *BookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.Creates++
	cp := *b
	cp.ID = s.nextID
	s.bookings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *BookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *BookingStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.GetByID(ctx, id)
}

func (s *BookingStore) Update(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	s.Updates++
	cp := *b
	s.bookings[b.ID] = &cp
	out := cp
	return &out, nil
}

func (s *BookingStore) ListActiveByStaff(_ context.Context, staffID int64, from, to time.Time) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.StaffID == staffID && b.IsActive() && b.StartAt.Before(to) && b.EndAt.After(from) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get возвращает сохранённое бронирование (nil, если его нет)
func (s *BookingStore) Get(id int64) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

// DirectTx выполняет функцию без транзакции
type DirectTx struct{}

func (DirectTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (DirectTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// FlakyTx отдаёт Err вместо первых Failures транзакций (взаимная блокировка, serialization failure)
type FlakyTx struct {
	Failures int
	Err      error
	Calls    int
}

func (tx *FlakyTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.Calls++
	if tx.Failures > 0 {
		tx.Failures--
		return tx.Err
	}
	return fn(ctx)
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c Clock) Now() time.Time { return c.T }

// Staff список мастеров
type Staff []*domain.Staff

func (s Staff) GetStaff(_ context.Context, staffID int64) (*domain.Staff, error) {
	for _, st := range s {
		if st.ID == staffID {
			return st, nil
		}
	}
	return nil, scheduleRepo.ErrStaffNotFound
}

func (s Staff) ListStaff(_ context.Context, salonID int64) ([]*domain.Staff, error) {
	var out []*domain.Staff
	for _, st := range s {
		if st.SalonID == salonID && st.IsActive {
			out = append(out, st)
		}
	}
	return out, nil
}

// ListStaffForService считает, что каждый мастер оказывает все услуги
func (s Staff) ListStaffForService(ctx context.Context, salonID, _ int64) ([]*domain.Staff, error) {
	return s.ListStaff(ctx, salonID)
}

// Roster мастера с перечнем услуг. Мастер без записи в Offers оказывает все услуги
type Roster struct {
	Staff
	Offers map[int64][]int64
}

func (r Roster) ListStaffForService(ctx context.Context, salonID, serviceID int64) ([]*domain.Staff, error) {
	active, err := r.ListStaff(ctx, salonID)
	if err != nil {
		return nil, err
	}

	var out []*domain.Staff
	for _, st := range active {
		offers, limited := r.Offers[st.ID]
		if !limited || slices.Contains(offers, serviceID) {
			out = append(out, st)
		}
	}
	return out, nil
}

// Availability окно 09:00-18:00 с перерывом 13:00-14:00 для всех мастеров,
// кроме перечисленных в DayOff; каждая услуга длится ServiceMinutes,
// у мастеров из StaffMinutes - их собственное значение
type Availability struct {
	ServiceMinutes int
	StaffMinutes   map[int64]int
	DayOff         map[int64]bool
	Loc            *time.Location
}

func (a Availability) TotalDuration(_ context.Context, _, staffID int64, serviceIDs []int64) (int, error) {
	if len(serviceIDs) == 0 {
		return 0, domain.NewValidationError("serviceIds", "at least one service is required")
	}
	minutes := a.ServiceMinutes
	if m, ok := a.StaffMinutes[staffID]; ok {
		minutes = m
	}
	return minutes * len(serviceIDs), nil
}

func (a Availability) WorkingAt(_ context.Context, _ int64, staffID int64, start, end time.Time) (bool, error) {
	if a.DayOff[staffID] {
		return false, nil
	}
	bs, be := 13*60, 14*60
	w := domain.WorkWindow{StaffID: staffID, StartMinute: 9 * 60, EndMinute: 18 * 60, BreakStartMinute: &bs, BreakEndMinute: &be}
	day := domain.StartOfDay(start.In(a.Location()))
	return w.Accepts(day, start, end), nil
}

func (a Availability) Location() *time.Location {
	if a.Loc == nil {
		return time.UTC
	}
	return a.Loc
}

// Settings возвращает одни и те же настройки для любого мастера
type Settings struct {
	Value *domain.SchedulingSettings
}

func (s Settings) Effective(_ context.Context, salonID int64, _ *int64) (*domain.SchedulingSettings, string, error) {
	if s.Value != nil {
		return s.Value, "salon", nil
	}
	return domain.DefaultSettings(salonID), "default", nil
}

// Metrics считает записи и отказы по сценариям
type Metrics struct {
	mu       sync.Mutex
	Written  map[string]int
	Rejected map[string]int
}

func (m *Metrics) BookingWritten(flow string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Written == nil {
		m.Written = make(map[string]int)
	}
	m.Written[flow]++
}

func (m *Metrics) ConflictRejected(flow string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Rejected == nil {
		m.Rejected = make(map[string]int)
	}
	m.Rejected[flow]++
}
