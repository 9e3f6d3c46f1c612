package queue

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func TestIncrement_StartsAtOnePerSalonAndDay(t *testing.T) {
	repo := NewRepository(storagetest.Open(t))
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := repo.Increment(ctx, 100, day)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := repo.Increment(ctx, 100, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, got, "next day starts over")

	got, err = repo.Increment(ctx, 200, day)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "other salon has its own counter")

	current, err := repo.Current(ctx, 100, day)
	require.NoError(t, err)
	assert.Equal(t, 3, current)

	current, err = repo.Current(ctx, 300, day)
	require.NoError(t, err)
	assert.Zero(t, current)
}

func TestIncrement_ConcurrentTransactionsGetDistinctNumbers(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	txm := txmanager.NewTransactionManager(db)
	ctx := context.Background()

	const workers = 12
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := txm.Do(ctx, func(ctx context.Context) error {
				n, err := repo.Increment(ctx, 100, day)
				if err != nil {
					return err
				}
				mu.Lock()
				numbers = append(numbers, n)
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sort.Ints(numbers)
	want := make([]int, workers)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, numbers)
}

func TestIncrement_RolledBackNumberIsReissued(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	txm := txmanager.NewTransactionManager(db)
	ctx := context.Background()

	_, err := repo.Increment(ctx, 100, day)
	require.NoError(t, err)

	err = txm.Do(ctx, func(ctx context.Context) error {
		n, err := repo.Increment(ctx, 100, day)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	n, err := repo.Increment(ctx, 100, day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
