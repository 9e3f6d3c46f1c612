package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]*domain.Booking)
	return out, args.Error(1)
}

var loc = time.FixedZone("UTC+3", 3*60*60)

func TestListSalonDay_UsesSalonLocalDay(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything, domain.BookingFilter{
		SalonID:  1,
		StaffID:  ptr.Ptr(int64(4)),
		From:     time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
		To:       time.Date(2026, 3, 11, 0, 0, 0, 0, loc),
		Statuses: []domain.BookingStatus{domain.StatusConfirmed},
	}).Return([]*domain.Booking{{ID: 1}}, nil)

	svc := NewService(repo, loc, logger.NewNop())
	got, err := svc.ListSalonDay(context.Background(), &models.SalonDayRequest{
		SalonID:  1,
		Date:     time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC), // 01:30 10 марта по салону
		StaffID:  ptr.Ptr(int64(4)),
		Statuses: []domain.BookingStatus{domain.StatusConfirmed},
	})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestListStaffRange_Validation(t *testing.T) {
	svc := NewService(&mockRepo{}, loc, logger.NewNop())
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	_, err := svc.ListStaffRange(context.Background(), &models.StaffRangeRequest{StaffID: 1, From: from, To: from.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ListStaffRange(context.Background(), &models.StaffRangeRequest{StaffID: 1, From: from, To: from.AddDate(0, 0, 40)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListStaffRange_InclusiveEnd(t *testing.T) {
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	repo := &mockRepo{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingFilter) bool {
		return *f.StaffID == 2 && f.From.Equal(from) && f.To.Equal(from.AddDate(0, 0, 3))
	})).Return([]*domain.Booking{}, nil)

	svc := NewService(repo, loc, logger.NewNop())
	_, err := svc.ListStaffRange(context.Background(), &models.StaffRangeRequest{StaffID: 2, From: from, To: from.AddDate(0, 0, 2)})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetByID(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, bookingRepo.ErrBookingNotFound)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("db down"))

	svc := NewService(repo, loc, logger.NewNop())

	b, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestParseStatuses(t *testing.T) {
	got, err := models.ParseStatuses([]string{"pending", "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, []domain.BookingStatus{domain.StatusPending, domain.StatusCancelled}, got)

	_, err = models.ParseStatuses([]string{"done"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
