package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(id string) models.Order {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return models.Order{
		ID:              id,
		AuthorizationID: "auth-" + id,
		Status:          models.StatusPaid,
		Amount:          100000,
		Metadata:        map[string]string{models.MetadataSellerRef: "s1"},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestMemoryGetOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	created, err := store.InsertOrderIfAbsent(ctx, newTestOrder("o1"))
	require.NoError(t, err)
	require.True(t, created)

	order, err := store.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, newTestOrder("o1"), order)

	// Callers get copies, not the stored value.
	order.Metadata[models.MetadataSellerRef] = "changed"
	again, err := store.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "s1", again.Metadata[models.MetadataSellerRef])
}

func TestMemoryInsertOrderIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	created, err := store.InsertOrderIfAbsent(ctx, newTestOrder("o1"))
	require.NoError(t, err)
	assert.True(t, created)

	second := newTestOrder("o1")
	second.Amount = 1
	created, err = store.InsertOrderIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)

	order, err := store.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), order.Amount)
}

func TestMemoryInsertOrderIfAbsentConcurrently(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.InsertOrderIfAbsent(ctx, newTestOrder("o1"))
			assert.NoError(t, err)
			if ok {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
}

func TestMemoryUpdateOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.UpdateOrder(ctx, "missing", func(order *models.Order) error {
		t.Fatal("mutator must not run for a missing order")
		return nil
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = store.InsertOrderIfAbsent(ctx, newTestOrder("o1"))
	require.NoError(t, err)

	updated, err := store.UpdateOrder(ctx, "o1", func(order *models.Order) error {
		order.Status = models.StatusShipped
		order.TrackingNumber = "TRK-1"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)

	stored, err := store.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestMemoryUpdateOrderFailedMutationLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.InsertOrderIfAbsent(ctx, newTestOrder("o1"))
	require.NoError(t, err)

	errRejected := errors.New("rejected")
	_, err = store.UpdateOrder(ctx, "o1", func(order *models.Order) error {
		order.Status = models.StatusCancelled
		order.Metadata[models.MetadataSellerRef] = "other"
		return errRejected
	})
	assert.ErrorIs(t, err, errRejected)

	stored, err := store.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, newTestOrder("o1"), stored)
}

func TestMemoryUpdateOrderIsAtomicPerKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	const (
		orders  = 4
		writers = 25
	)

	for i := 0; i < orders; i++ {
		_, err := store.InsertOrderIfAbsent(ctx, newTestOrder(fmt.Sprintf("o%d", i)))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < orders; i++ {
		for j := 0; j < writers; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := store.UpdateOrder(ctx, id, func(order *models.Order) error {
					n, _ := strconv.Atoi(order.TrackingNumber)
					order.TrackingNumber = strconv.Itoa(n + 1)
					return nil
				})
				assert.NoError(t, err)
			}(fmt.Sprintf("o%d", i))
		}
	}
	wg.Wait()

	for i := 0; i < orders; i++ {
		order, err := store.GetOrder(ctx, fmt.Sprintf("o%d", i))
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(writers), order.TrackingNumber)
	}

	assert.Empty(t, store.locks)
}
