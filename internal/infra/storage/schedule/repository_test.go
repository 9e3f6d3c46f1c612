package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/storagetest"
)

func TestGetServiceDurations(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	anna := storagetest.InsertStaff(t, db, 100, "Anna")
	haircut := storagetest.InsertService(t, db, 100, 30)
	coloring := storagetest.InsertService(t, db, 100, 90)
	foreign := storagetest.InsertService(t, db, 200, 45)
	storagetest.Exec(t, db, "INSERT INTO staff_services (staff_id, service_id, duration_minutes) VALUES ($1, $2, 40)", anna, haircut)
	storagetest.Exec(t, db, "INSERT INTO staff_services (staff_id, service_id) VALUES ($1, $2)", anna, coloring)

	t.Run("staff override then service default", func(t *testing.T) {
		got, err := repo.GetServiceDurations(ctx, 100, anna, []int64{haircut, coloring})
		require.NoError(t, err)
		assert.Equal(t, map[int64]int{haircut: 40, coloring: 90}, got)
	})

	t.Run("service of another salon", func(t *testing.T) {
		_, err := repo.GetServiceDurations(ctx, 100, anna, []int64{haircut, foreign})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := repo.GetServiceDurations(ctx, 100, anna, []int64{foreign + 1000})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestListStaffForService(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	anna := storagetest.InsertStaff(t, db, 100, "Anna")
	boris := storagetest.InsertStaff(t, db, 100, "Boris")
	gone := storagetest.InsertStaff(t, db, 100, "Gleb")
	storagetest.Exec(t, db, "UPDATE staff SET is_active = FALSE WHERE id = $1", gone)

	haircut := storagetest.InsertService(t, db, 100, 30)
	for _, id := range []int64{anna, gone} {
		storagetest.Exec(t, db, "INSERT INTO staff_services (staff_id, service_id) VALUES ($1, $2)", id, haircut)
	}

	staff, err := repo.ListStaffForService(ctx, 100, haircut)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, anna, staff[0].ID)

	all, err := repo.ListStaff(ctx, 100)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, boris, all[1].ID)
}
