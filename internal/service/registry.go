package service

import (
	"context"
	"fmt"

	"daily-board/internal/calendar"
	"daily-board/internal/model"

	"gorm.io/gorm"
)

// Terminal workflow statuses per team. The dev board closes tasks
// through review, design signs off with approval; "wont_do" counts as
// finished for both so abandoned tasks stop rolling forward.
var defaultTerminalStatuses = map[string][]string{
	"dev":    {"done", "merged", "wont_do"},
	"design": {"done", "approved", "wont_do"},
}

var fallbackTerminalStatuses = statusSet([]string{"done", "wont_do"})

// TaskRegistry is the read-only view over the task board's table. It
// owns the only is-this-status-terminal lookup in the codebase.
type TaskRegistry struct {
	db       *gorm.DB
	terminal map[string]map[string]bool
}

// NewTaskRegistry builds the per-team terminal table from defaults
// plus config overrides (overrides replace a team's whole list).
func NewTaskRegistry(db *gorm.DB, overrides map[string][]string) *TaskRegistry {
	terminal := make(map[string]map[string]bool)
	for team, statuses := range defaultTerminalStatuses {
		terminal[team] = statusSet(statuses)
	}
	for team, statuses := range overrides {
		terminal[team] = statusSet(statuses)
	}
	return &TaskRegistry{db: db, terminal: terminal}
}

func statusSet(statuses []string) map[string]bool {
	m := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		m[s] = true
	}
	return m
}

func (r *TaskRegistry) TasksDueOn(ctx context.Context, assigneeID int, date calendar.Date) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("assignee_id = ? AND due_date = ?", assigneeID, date.String()).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query tasks due %s for %d: %w", date, assigneeID, err)
	}
	return tasks, nil
}

// TasksByIDs resolves ids to tasks. Ids with no row (task deleted on
// the board) are simply absent from the result.
func (r *TaskRegistry) TasksByIDs(ctx context.Context, ids []uint) (map[uint]model.Task, error) {
	if len(ids) == 0 {
		return map[uint]model.Task{}, nil
	}
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("resolve %d task ids: %w", len(ids), err)
	}
	out := make(map[uint]model.Task, len(tasks))
	for _, t := range tasks {
		out[t.ID] = t
	}
	return out, nil
}

func (r *TaskRegistry) IsTerminal(t model.Task) bool {
	if set, ok := r.terminal[t.Team]; ok {
		return set[t.Status]
	}
	return fallbackTerminalStatuses[t.Status]
}
