package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchedulingSettings), args.Error(1)
}

func (m *mockRepo) GetBySalonAndStaff(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, salonID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchedulingSettings), args.Error(1)
}

func (m *mockRepo) GetWithHierarchy(ctx context.Context, salonID int64, staffID *int64) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, salonID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchedulingSettings), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id int64, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, id, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchedulingSettings), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, salonID int64, staffID *int64) error {
	return m.Called(ctx, salonID, staffID).Error(0)
}

type staffStub map[int64]*domain.Staff

func (s staffStub) GetStaff(_ context.Context, id int64) (*domain.Staff, error) {
	if st, ok := s[id]; ok {
		return st, nil
	}
	return nil, assert.AnError
}

func TestEffective_Defaults(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetWithHierarchy", mock.Anything, int64(1), (*int64)(nil)).Return(nil, settingsRepo.ErrSettingsNotFound)

	svc := NewService(repo, staffStub{}, 15, logger.NewNop())

	got, level, err := svc.Effective(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, models.LevelDefault, level)
	assert.Equal(t, 15, got.SlotGranularityMinutes)
	assert.Equal(t, 0, got.MinBookingNoticeMinutes)
}

func TestEffective_StaffLevel(t *testing.T) {
	staffID := ptr.Ptr(int64(5))
	repo := &mockRepo{}
	repo.On("GetWithHierarchy", mock.Anything, int64(1), staffID).Return(&domain.SchedulingSettings{
		ID: 3, SalonID: 1, StaffID: staffID, SlotGranularityMinutes: 20,
	}, nil)

	svc := NewService(repo, staffStub{}, 30, logger.NewNop())

	got, level, err := svc.Effective(context.Background(), 1, staffID)
	require.NoError(t, err)
	assert.Equal(t, models.LevelStaff, level)
	assert.Equal(t, 20, got.SlotGranularityMinutes)
}

func TestUpsert_CreatesInheritingFromSalon(t *testing.T) {
	staffID := ptr.Ptr(int64(5))
	repo := &mockRepo{}
	repo.On("GetBySalonAndStaff", mock.Anything, int64(1), staffID).Return(nil, settingsRepo.ErrSettingsNotFound)
	repo.On("GetWithHierarchy", mock.Anything, int64(1), staffID).Return(&domain.SchedulingSettings{
		ID: 9, SalonID: 1, SlotGranularityMinutes: 30, MinBookingNoticeMinutes: 60, AdvanceBookingDays: 14,
	}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.SchedulingSettings) bool {
		return s.ID == 0 && s.StaffID == staffID && s.SlotGranularityMinutes == 15 &&
			s.MinBookingNoticeMinutes == 60 && s.AdvanceBookingDays == 14
	})).Return(&domain.SchedulingSettings{
		ID: 10, SalonID: 1, StaffID: staffID, SlotGranularityMinutes: 15, MinBookingNoticeMinutes: 60, AdvanceBookingDays: 14,
	}, nil)

	svc := NewService(repo, staffStub{5: {ID: 5, SalonID: 1, IsActive: true}}, 30, logger.NewNop())

	resp, err := svc.Upsert(context.Background(), &models.UpsertSettingsRequest{
		SalonID:                1,
		StaffID:                staffID,
		SlotGranularityMinutes: ptr.Ptr(15),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelStaff, resp.Level)
	assert.Equal(t, 15, resp.SlotGranularityMinutes)
	repo.AssertExpectations(t)
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetBySalonAndStaff", mock.Anything, int64(1), (*int64)(nil)).Return(&domain.SchedulingSettings{
		ID: 4, SalonID: 1, SlotGranularityMinutes: 30,
	}, nil)
	repo.On("Update", mock.Anything, int64(4), mock.Anything).Return(&domain.SchedulingSettings{
		ID: 4, SalonID: 1, SlotGranularityMinutes: 30, AdvanceBookingDays: 30,
	}, nil)

	svc := NewService(repo, staffStub{}, 30, logger.NewNop())

	resp, err := svc.Upsert(context.Background(), &models.UpsertSettingsRequest{
		SalonID:            1,
		AdvanceBookingDays: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelSalon, resp.Level)
	assert.Equal(t, 30, resp.AdvanceBookingDays)
}

func TestUpsert_Validation(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetBySalonAndStaff", mock.Anything, int64(1), (*int64)(nil)).Return(&domain.SchedulingSettings{
		ID: 4, SalonID: 1, SlotGranularityMinutes: 30,
	}, nil)

	svc := NewService(repo, staffStub{}, 30, logger.NewNop())

	_, err := svc.Upsert(context.Background(), &models.UpsertSettingsRequest{
		SalonID:                1,
		SlotGranularityMinutes: ptr.Ptr(1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsert_StaffOfAnotherSalon(t *testing.T) {
	svc := NewService(&mockRepo{}, staffStub{5: {ID: 5, SalonID: 2}}, 30, logger.NewNop())

	_, err := svc.Upsert(context.Background(), &models.UpsertSettingsRequest{
		SalonID: 1,
		StaffID: ptr.Ptr(int64(5)),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
