package service

import (
	"context"
	"fmt"

	"daily-board/internal/calendar"
	"daily-board/internal/logger"
)

// Rollover carries unfinished task ids forward day by day. The chain
// must run in ascending date order: each day's result is the next
// day's input.
type Rollover struct {
	store *LedgerStore
}

func NewRollover(store *LedgerStore) *Rollover { return &Rollover{store: store} }

// MoveUnfinished moves every task still open on from into to's
// assigned set. Union semantics, so re-running is harmless; ids the
// member already completed on any day are dropped, never revived.
func (r *Rollover) MoveUnfinished(ctx context.Context, memberID int, from, to calendar.Date) error {
	prev, err := r.store.Get(ctx, memberID, from)
	if err != nil {
		return err
	}
	if len(prev.AssignedTaskIDs) == 0 {
		return nil
	}
	next, err := r.store.Get(ctx, memberID, to)
	if err != nil {
		return err
	}
	done, err := r.store.CompletedSet(ctx, memberID)
	if err != nil {
		return err
	}

	moved := 0
	for _, id := range prev.AssignedTaskIDs {
		if done[id] {
			continue
		}
		if !containsID(next.AssignedTaskIDs, id) {
			next.AssignedTaskIDs = append(next.AssignedTaskIDs, id)
		}
		moved++
	}

	// Write the target day before clearing the source: if the second
	// write fails, the id is on both days and the next run dedups it;
	// the reverse order would lose it.
	if err := r.store.Put(ctx, next); err != nil {
		return err
	}
	prev.AssignedTaskIDs = nil
	if err := r.store.Put(ctx, prev); err != nil {
		return err
	}

	logger.Debug("rollover.step", "member", memberID, "from", from.String(), "to", to.String(), "moved", moved)
	return nil
}

// RollForward walks the chain from from (exclusive) to to (inclusive),
// moving each day's leftovers into the next. Strictly sequential; a
// failed step leaves a resumable state.
func (r *Rollover) RollForward(ctx context.Context, memberID int, from, to calendar.Date) error {
	if !from.Before(to) {
		return nil
	}
	for _, d := range calendar.Range(from.AddDays(1), to) {
		if err := r.MoveUnfinished(ctx, memberID, d.AddDays(-1), d); err != nil {
			return fmt.Errorf("roll forward into %s: %w", d, err)
		}
	}
	logger.Debug("rollover.done", "member", memberID, "from", from.String(), "to", to.String())
	return nil
}
