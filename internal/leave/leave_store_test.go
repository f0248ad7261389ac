package leave_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func TestRequestStore_CreateAndGet(t *testing.T) {
	store := leave.NewRequestStore()

	r := store.Create("E101", "M501", 3, "Family event")
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, leave.StatusPendingApproval, r.Status)
	assert.Equal(t, 3, r.DaysRequested)
	assert.Nil(t, r.DecidedAt)

	got, ok := store.Get(r.ID)
	assert.True(t, ok)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "E101", got.EmployeeID)
	assert.Equal(t, "M501", got.ManagerID)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestRequestStore_Transition(t *testing.T) {
	t.Run("pending to approved", func(t *testing.T) {
		store := leave.NewRequestStore()
		r := store.Create("E101", "M501", 3, "Family event")

		decided, err := store.Transition(r.ID, leave.StatusApproved)
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, decided.Status)
		assert.NotNil(t, decided.DecidedAt)
	})

	t.Run("second decide is rejected and status unchanged", func(t *testing.T) {
		store := leave.NewRequestStore()
		r := store.Create("E101", "M501", 3, "Family event")

		_, err := store.Transition(r.ID, leave.StatusDenied)
		assert.NoError(t, err)

		_, err = store.Transition(r.ID, leave.StatusApproved)
		assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)

		got, _ := store.Get(r.ID)
		assert.Equal(t, leave.StatusDenied, got.Status)
	})

	t.Run("unknown request", func(t *testing.T) {
		store := leave.NewRequestStore()
		_, err := store.Transition("missing", leave.StatusApproved)
		assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)
	})
}

func TestRequestStore_Transition_Concurrent(t *testing.T) {
	store := leave.NewRequestStore()
	r := store.Create("E101", "M501", 3, "Family event")

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := leave.StatusApproved
			if i%2 == 1 {
				target = leave.StatusDenied
			}
			if _, err := store.Transition(r.ID, target); err == nil {
				winners.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	got, _ := store.Get(r.ID)
	assert.True(t, got.Terminal())
}
