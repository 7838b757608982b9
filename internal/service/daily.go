package service

import (
	"context"
	"fmt"

	"daily-board/internal/calendar"
	"daily-board/internal/logger"
	"daily-board/internal/model"
)

// DailyService orchestrates the per-day flow the report UI drives:
// roll the chain forward, reconcile against the board, load the
// ledger, resolve tasks for display. It owns no ledger state.
type DailyService struct {
	store      *LedgerStore
	registry   *TaskRegistry
	reconciler *Reconciler
	rollover   *Rollover
	gate       *LockGate
	now        func() calendar.Date
}

func NewDailyService(store *LedgerStore, registry *TaskRegistry, reconciler *Reconciler, rollover *Rollover, gate *LockGate, now func() calendar.Date) *DailyService {
	return &DailyService{store: store, registry: registry, reconciler: reconciler, rollover: rollover, gate: gate, now: now}
}

// OpenDay prepares one day card. The rollover floor is the Monday of
// the current week; the chain must run before reconciliation or
// carried-over tasks go missing. Every step is idempotent, so a
// failed call can simply be retried.
func (s *DailyService) OpenDay(ctx context.Context, memberID int, date calendar.Date) (*model.DayView, error) {
	floor := s.now().StartOfWeek()
	if floor.Before(date) {
		if err := s.rollover.RollForward(ctx, memberID, floor, date); err != nil {
			return nil, err
		}
	}
	if err := s.reconciler.Reconcile(ctx, memberID, date); err != nil {
		return nil, err
	}
	ledger, err := s.store.Get(ctx, memberID, date)
	if err != nil {
		return nil, err
	}
	return s.renderDay(ctx, ledger, date)
}

// GetDailyReport is the read-only load: no rollover, no
// reconciliation, no writes.
func (s *DailyService) GetDailyReport(ctx context.Context, memberID int, date calendar.Date) (*model.DayView, error) {
	ledger, err := s.store.Get(ctx, memberID, date)
	if err != nil {
		return nil, err
	}
	return s.renderDay(ctx, ledger, date)
}

// ToggleTask flips a task between assigned and completed on one day.
// A gate rejection is returned as a value and nothing is written.
func (s *DailyService) ToggleTask(ctx context.Context, memberID int, date calendar.Date, taskID uint, wantsCompleted bool, viewed calendar.Date) (*model.DayView, *Rejection, error) {
	if wantsCompleted {
		if rej := s.gate.CheckComplete(date, viewed); rej != nil {
			return nil, rej, nil
		}
	} else {
		if rej := s.gate.CheckRevert(date); rej != nil {
			return nil, rej, nil
		}
	}

	ledger, err := s.store.Get(ctx, memberID, date)
	if err != nil {
		return nil, nil, err
	}
	if wantsCompleted {
		ledger.AssignedTaskIDs = removeID(ledger.AssignedTaskIDs, taskID)
		ledger.CompletedTaskIDs = addID(ledger.CompletedTaskIDs, taskID)
	} else {
		ledger.CompletedTaskIDs = removeID(ledger.CompletedTaskIDs, taskID)
		ledger.AssignedTaskIDs = addID(ledger.AssignedTaskIDs, taskID)
	}
	if err := s.store.Put(ctx, ledger); err != nil {
		return nil, nil, err
	}
	logger.Info("task.toggled", "member", memberID, "date", date.String(), "task", taskID, "completed", wantsCompleted)

	// The board may have changed what counts as finished in the
	// meantime; re-sync before rendering.
	if err := s.reconciler.Reconcile(ctx, memberID, date); err != nil {
		return nil, nil, err
	}
	return s.viewOf(ctx, memberID, date)
}

// ToggleTaskAcrossDays completes (or reverts) a task whose ledger
// entry lives on its due day while the user is looking at a different
// day, typically an overdue task shown on today's card.
func (s *DailyService) ToggleTaskAcrossDays(ctx context.Context, memberID int, viewed calendar.Date, taskID uint, dueDate calendar.Date, wantsCompleted bool) (*model.DayView, *Rejection, error) {
	if dueDate.Equal(viewed) {
		return s.ToggleTask(ctx, memberID, viewed, taskID, wantsCompleted, viewed)
	}

	if wantsCompleted {
		if rej := s.gate.CheckComplete(dueDate, viewed); rej != nil {
			return nil, rej, nil
		}
		viewedLedger, err := s.store.Get(ctx, memberID, viewed)
		if err != nil {
			return nil, nil, err
		}
		viewedLedger.AssignedTaskIDs = removeID(viewedLedger.AssignedTaskIDs, taskID)
		viewedLedger.CompletedTaskIDs = addID(viewedLedger.CompletedTaskIDs, taskID)
		// Completion is recorded first: a stale assignment left on the
		// due day when the second write fails is dropped by the next
		// reconcile, while the reverse order could lose the completion.
		if err := s.store.Put(ctx, viewedLedger); err != nil {
			return nil, nil, err
		}
		dueLedger, err := s.store.Get(ctx, memberID, dueDate)
		if err != nil {
			return nil, nil, err
		}
		if containsID(dueLedger.AssignedTaskIDs, taskID) {
			dueLedger.AssignedTaskIDs = removeID(dueLedger.AssignedTaskIDs, taskID)
			if err := s.store.Put(ctx, dueLedger); err != nil {
				return nil, nil, err
			}
		}
	} else {
		if rej := s.gate.CheckRevert(viewed); rej != nil {
			return nil, rej, nil
		}
		viewedLedger, err := s.store.Get(ctx, memberID, viewed)
		if err != nil {
			return nil, nil, err
		}
		viewedLedger.CompletedTaskIDs = removeID(viewedLedger.CompletedTaskIDs, taskID)
		if err := s.store.Put(ctx, viewedLedger); err != nil {
			return nil, nil, err
		}
		dueLedger, err := s.store.Get(ctx, memberID, dueDate)
		if err != nil {
			return nil, nil, err
		}
		dueLedger.CompletedTaskIDs = removeID(dueLedger.CompletedTaskIDs, taskID)
		dueLedger.AssignedTaskIDs = addID(dueLedger.AssignedTaskIDs, taskID)
		if err := s.store.Put(ctx, dueLedger); err != nil {
			return nil, nil, err
		}
	}

	logger.Info("task.toggled_cross", "member", memberID, "viewed", viewed.String(),
		"due", dueDate.String(), "task", taskID, "completed", wantsCompleted)
	if err := s.reconciler.Reconcile(ctx, memberID, viewed); err != nil {
		return nil, nil, err
	}
	return s.viewOf(ctx, memberID, viewed)
}

// AssignTask pins a task onto a specific day, bypassing due-date
// reconciliation. Skipped when the member already completed it.
func (s *DailyService) AssignTask(ctx context.Context, memberID int, date calendar.Date, taskID uint) (*model.DayView, *Rejection, error) {
	if rej := s.gate.CheckDayEdit(date); rej != nil {
		return nil, rej, nil
	}
	ledger, err := s.store.Get(ctx, memberID, date)
	if err != nil {
		return nil, nil, err
	}
	done, err := s.store.CompletedAnywhere(ctx, memberID, taskID)
	if err != nil {
		return nil, nil, err
	}
	if !done && !containsID(ledger.CompletedTaskIDs, taskID) {
		ledger.AssignedTaskIDs = addID(ledger.AssignedTaskIDs, taskID)
		if err := s.store.Put(ctx, ledger); err != nil {
			return nil, nil, err
		}
		logger.Info("task.assigned", "member", memberID, "date", date.String(), "task", taskID)
	}
	return s.viewOf(ctx, memberID, date)
}

func (s *DailyService) MarkAbsent(ctx context.Context, memberID int, date calendar.Date, absent bool) (*model.DayView, *Rejection, error) {
	if rej := s.gate.CheckDayEdit(date); rej != nil {
		return nil, rej, nil
	}
	ledger, err := s.store.Get(ctx, memberID, date)
	if err != nil {
		return nil, nil, err
	}
	ledger.IsAbsent = absent
	if err := s.store.Put(ctx, ledger); err != nil {
		return nil, nil, err
	}
	return s.viewOf(ctx, memberID, date)
}

func (s *DailyService) UpdateCheckInOut(ctx context.Context, memberID int, date calendar.Date, checkIn, checkOut *string) (*model.DayView, *Rejection, error) {
	if rej := s.gate.CheckDayEdit(date); rej != nil {
		return nil, rej, nil
	}
	ledger, err := s.store.Get(ctx, memberID, date)
	if err != nil {
		return nil, nil, err
	}
	if checkIn != nil {
		ledger.CheckInTime = *checkIn
	}
	if checkOut != nil {
		ledger.CheckOutTime = *checkOut
	}
	if err := s.store.Put(ctx, ledger); err != nil {
		return nil, nil, err
	}
	return s.viewOf(ctx, memberID, date)
}

// MoveUnfinished exposes the chain primitive for manual runs.
func (s *DailyService) MoveUnfinished(ctx context.Context, memberID int, from, to calendar.Date) error {
	if !from.Before(to) {
		return fmt.Errorf("rollover range %s..%s: from must precede to", from, to)
	}
	return s.rollover.RollForward(ctx, memberID, from, to)
}

// WeekView renders the Monday-week containing date, rolling the chain
// once up to the week's last day that is not in the future.
func (s *DailyService) WeekView(ctx context.Context, memberID int, date calendar.Date) (*model.WeekView, error) {
	start := date.StartOfWeek()
	end := start.AddDays(6)
	today := s.now()

	rollTo := end
	if today.Before(end) {
		rollTo = today
	}
	if start.Before(rollTo) {
		if err := s.rollover.RollForward(ctx, memberID, start, rollTo); err != nil {
			return nil, err
		}
	}

	week := &model.WeekView{Start: start.String()}
	for _, d := range calendar.Range(start, end) {
		if err := s.reconciler.Reconcile(ctx, memberID, d); err != nil {
			return nil, err
		}
		ledger, err := s.store.Get(ctx, memberID, d)
		if err != nil {
			return nil, err
		}
		view, err := s.renderDay(ctx, ledger, d)
		if err != nil {
			return nil, err
		}
		week.Days = append(week.Days, *view)
	}
	return week, nil
}

func (s *DailyService) viewOf(ctx context.Context, memberID int, date calendar.Date) (*model.DayView, *Rejection, error) {
	ledger, err := s.store.Get(ctx, memberID, date)
	if err != nil {
		return nil, nil, err
	}
	view, err := s.renderDay(ctx, ledger, date)
	return view, nil, err
}

// renderDay resolves ledger ids into tasks for display. Ids whose
// task was deleted on the board are omitted, not errors.
func (s *DailyService) renderDay(ctx context.Context, ledger *model.DayLedger, date calendar.Date) (*model.DayView, error) {
	all := append(append([]uint(nil), ledger.AssignedTaskIDs...), ledger.CompletedTaskIDs...)
	byID, err := s.registry.TasksByIDs(ctx, all)
	if err != nil {
		return nil, err
	}

	view := &model.DayView{
		Date:     date.String(),
		Ledger:   *ledger,
		Editable: date.Equal(s.now()),
	}
	for _, id := range ledger.AssignedTaskIDs {
		if t, ok := byID[id]; ok {
			view.Assigned = append(view.Assigned, taskView(t, date, "assigned"))
		}
	}
	for _, id := range ledger.CompletedTaskIDs {
		if t, ok := byID[id]; ok {
			view.Completed = append(view.Completed, taskView(t, date, "completed"))
		}
	}
	return view, nil
}

func taskView(t model.Task, date calendar.Date, state string) model.TaskView {
	overdue := false
	if due, err := calendar.Parse(t.DueDate); err == nil {
		overdue = state == "assigned" && due.Before(date)
	}
	return model.TaskView{
		ID:      t.ID,
		Title:   t.Title,
		DueDate: t.DueDate,
		Status:  t.Status,
		Overdue: overdue,
		State:   state,
	}
}
