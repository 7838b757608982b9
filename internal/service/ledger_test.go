package service

import (
	"context"
	"testing"

	"daily-board/internal/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingReturnsEmptyLedger(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))

	l, err := store.Get(context.Background(), 7, calendar.MustParse("2024-03-01"))
	require.NoError(t, err)
	assert.Zero(t, l.ID)
	assert.Equal(t, 7, l.MemberID)
	assert.Equal(t, "2024-03-01", l.Date)
	assert.Empty(t, l.AssignedTaskIDs)
	assert.Empty(t, l.CompletedTaskIDs)
}

func TestPutCreateThenUpdate(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	ctx := context.Background()

	l, err := store.Get(ctx, 1, calendar.MustParse("2024-03-01"))
	require.NoError(t, err)
	l.AssignedTaskIDs = []uint{1, 2}
	l.CheckInTime = "09:10"
	require.NoError(t, store.Put(ctx, l))

	got := getLedger(t, store, 1, "2024-03-01")
	assert.NotZero(t, got.ID)
	assert.Equal(t, []uint{1, 2}, got.AssignedTaskIDs)
	assert.Equal(t, "09:10", got.CheckInTime)

	got.AssignedTaskIDs = removeID(got.AssignedTaskIDs, 1)
	got.CompletedTaskIDs = addID(got.CompletedTaskIDs, 1)
	got.IsAbsent = true
	require.NoError(t, store.Put(ctx, got))

	again := getLedger(t, store, 1, "2024-03-01")
	assert.Equal(t, []uint{2}, again.AssignedTaskIDs)
	assert.Equal(t, []uint{1}, again.CompletedTaskIDs)
	assert.True(t, again.IsAbsent)
}

func TestCompletedSetSpansDays(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	ctx := context.Background()

	putLedger(t, store, 1, "2024-03-01", nil, []uint{10})
	putLedger(t, store, 1, "2024-03-03", []uint{11}, []uint{12})
	putLedger(t, store, 2, "2024-03-01", nil, []uint{99}) // other member

	done, err := store.CompletedSet(ctx, 1)
	require.NoError(t, err)
	assert.True(t, done[10])
	assert.True(t, done[12])
	assert.False(t, done[11])
	assert.False(t, done[99])

	anywhere, err := store.CompletedAnywhere(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, anywhere)
	anywhere, err = store.CompletedAnywhere(ctx, 1, 99)
	require.NoError(t, err)
	assert.False(t, anywhere)
}
