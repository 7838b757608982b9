package service

import (
	"context"
	"fmt"

	"daily-board/internal/calendar"
	"daily-board/internal/logger"
	"daily-board/internal/model"
)

// Reconciler syncs one day's ledger against the task board. The board
// and the daily report are edited by different people, so the two
// sources drift; reconciliation folds board facts into the ledger
// without ever touching the board.
type Reconciler struct {
	store    *LedgerStore
	registry *TaskRegistry
}

func NewReconciler(store *LedgerStore, registry *TaskRegistry) *Reconciler {
	return &Reconciler{store: store, registry: registry}
}

// Reconcile merges registry truth into the (member, date) ledger:
//
//   - tasks due that day and still open are added to assigned, unless
//     some day's ledger already tracks them (completed anywhere, or
//     carried to a later day by the chain);
//   - tasks the board closed are moved out of assigned into completed;
//   - ids rolled in from earlier days are kept, whatever their due
//     date, until completed somewhere.
//
// Idempotent; persists only when something changed.
func (r *Reconciler) Reconcile(ctx context.Context, memberID int, date calendar.Date) error {
	ledger, err := r.store.Get(ctx, memberID, date)
	if err != nil {
		return err
	}
	due, err := r.registry.TasksDueOn(ctx, memberID, date)
	if err != nil {
		return err
	}
	// The guard is any-day tracking, not just completion: a task the
	// chain already rolled onto a later day must not be re-seeded on
	// its due day when that day is reconciled again.
	tracked, err := r.store.TrackedSet(ctx, memberID)
	if err != nil {
		return err
	}

	changed := false
	for _, t := range due {
		if r.registry.IsTerminal(t) {
			if containsID(ledger.AssignedTaskIDs, t.ID) {
				ledger.AssignedTaskIDs = removeID(ledger.AssignedTaskIDs, t.ID)
				ledger.CompletedTaskIDs = addID(ledger.CompletedTaskIDs, t.ID)
				changed = true
			}
			continue
		}
		if tracked[t.ID] {
			continue
		}
		ledger.AssignedTaskIDs = append(ledger.AssignedTaskIDs, t.ID)
		changed = true
	}

	// Rolled-in ids have an earlier due date and are missed by the
	// due-on query; check them against the board too so a completion
	// made there heals into the ledger. Ids with no task row (deleted
	// on the board) stay put and are filtered at display time.
	if ch, err := r.foldBoardCompletions(ctx, ledger); err != nil {
		return err
	} else if ch {
		changed = true
	}

	if !changed {
		return nil
	}
	if err := r.store.Put(ctx, ledger); err != nil {
		return fmt.Errorf("reconcile %d/%s: %w", memberID, date, err)
	}
	logger.Debug("reconcile.updated", "member", memberID, "date", date.String(),
		"assigned", len(ledger.AssignedTaskIDs), "completed", len(ledger.CompletedTaskIDs))
	return nil
}

func (r *Reconciler) foldBoardCompletions(ctx context.Context, ledger *model.DayLedger) (bool, error) {
	if len(ledger.AssignedTaskIDs) == 0 {
		return false, nil
	}
	byID, err := r.registry.TasksByIDs(ctx, ledger.AssignedTaskIDs)
	if err != nil {
		return false, err
	}
	changed := false
	for _, id := range append([]uint(nil), ledger.AssignedTaskIDs...) {
		t, ok := byID[id]
		if !ok || !r.registry.IsTerminal(t) {
			continue
		}
		ledger.AssignedTaskIDs = removeID(ledger.AssignedTaskIDs, id)
		ledger.CompletedTaskIDs = addID(ledger.CompletedTaskIDs, id)
		changed = true
	}
	return changed, nil
}
