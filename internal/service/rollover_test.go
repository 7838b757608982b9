package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollForwardCarriesOpenTask(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	roll := NewRollover(store)
	ctx := context.Background()

	// one task due 2024-03-01, never completed
	putLedger(t, store, 1, "2024-03-01", []uint{1}, nil)

	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-01"), d("2024-03-03")))

	assert.Empty(t, getLedger(t, store, 1, "2024-03-01").AssignedTaskIDs)
	assert.Empty(t, getLedger(t, store, 1, "2024-03-02").AssignedTaskIDs)
	assert.Equal(t, []uint{1}, getLedger(t, store, 1, "2024-03-03").AssignedTaskIDs)
}

func TestRollForwardIdempotent(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	roll := NewRollover(store)
	ctx := context.Background()

	putLedger(t, store, 1, "2024-03-01", []uint{1, 2}, nil)

	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-01"), d("2024-03-05")))
	first := getLedger(t, store, 1, "2024-03-05")

	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-01"), d("2024-03-05")))
	second := getLedger(t, store, 1, "2024-03-05")

	assert.ElementsMatch(t, first.AssignedTaskIDs, second.AssignedTaskIDs)
	assert.Len(t, second.AssignedTaskIDs, 2)
	for _, day := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"} {
		assert.Empty(t, getLedger(t, store, 1, day).AssignedTaskIDs, day)
	}
}

func TestRollForwardSkipsTaskCompletedMidChain(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	roll := NewRollover(store)
	ctx := context.Background()

	putLedger(t, store, 1, "2024-03-01", []uint{1}, nil)
	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-01"), d("2024-03-02")))

	// completed on 2024-03-02 before the rest of the chain runs
	l := getLedger(t, store, 1, "2024-03-02")
	l.AssignedTaskIDs = removeID(l.AssignedTaskIDs, 1)
	l.CompletedTaskIDs = addID(l.CompletedTaskIDs, 1)
	require.NoError(t, store.Put(ctx, l))

	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-01"), d("2024-03-05")))

	for _, day := range []string{"2024-03-03", "2024-03-04", "2024-03-05"} {
		assert.Empty(t, getLedger(t, store, 1, day).AssignedTaskIDs, day)
	}
	assert.Equal(t, []uint{1}, getLedger(t, store, 1, "2024-03-02").CompletedTaskIDs)
}

func TestRollForwardNeverResurrectsCompleted(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	roll := NewRollover(store)
	ctx := context.Background()

	// stale assignment left behind on 03-01 after a cross-day
	// completion recorded on 03-04
	putLedger(t, store, 1, "2024-03-01", []uint{1}, nil)
	putLedger(t, store, 1, "2024-03-04", nil, []uint{1})

	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-01"), d("2024-03-03")))

	assert.Empty(t, getLedger(t, store, 1, "2024-03-02").AssignedTaskIDs)
	assert.Empty(t, getLedger(t, store, 1, "2024-03-03").AssignedTaskIDs)
	assertDisjoint(t, getLedger(t, store, 1, "2024-03-04"))
}

func TestMoveUnfinishedUnions(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	roll := NewRollover(store)
	ctx := context.Background()

	putLedger(t, store, 1, "2024-03-01", []uint{1, 2}, nil)
	putLedger(t, store, 1, "2024-03-02", []uint{2, 3}, nil)

	require.NoError(t, roll.MoveUnfinished(ctx, 1, d("2024-03-01"), d("2024-03-02")))

	next := getLedger(t, store, 1, "2024-03-02")
	assert.ElementsMatch(t, []uint{1, 2, 3}, next.AssignedTaskIDs)
	assert.Empty(t, getLedger(t, store, 1, "2024-03-01").AssignedTaskIDs)
}

func TestRollForwardNoopRanges(t *testing.T) {
	store := NewLedgerStore(newTestDB(t))
	roll := NewRollover(store)
	ctx := context.Background()

	putLedger(t, store, 1, "2024-03-02", []uint{1}, nil)

	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-02"), d("2024-03-02")))
	require.NoError(t, roll.RollForward(ctx, 1, d("2024-03-03"), d("2024-03-02")))
	assert.Equal(t, []uint{1}, getLedger(t, store, 1, "2024-03-02").AssignedTaskIDs)
}
