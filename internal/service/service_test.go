package service

import (
	"context"
	"fmt"
	"testing"

	"daily-board/internal/calendar"
	"daily-board/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. The name keeps each
// test's connections on the same database while isolating tests from
// each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	return db
}

func fixedNow(s string) func() calendar.Date {
	d := calendar.MustParse(s)
	return func() calendar.Date { return d }
}

func seedTask(t *testing.T, db *gorm.DB, id uint, assignee int, due, status, team string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Task{
		ID: id, Title: fmt.Sprintf("task %d", id), AssigneeID: assignee,
		DueDate: due, Status: status, Team: team,
	}).Error)
}

func taskWith(team, status string) model.Task {
	return model.Task{ID: 1, Team: team, Status: status}
}

func setStatus(t *testing.T, db *gorm.DB, id uint, status string) {
	t.Helper()
	require.NoError(t, db.Model(&model.Task{}).Where("id = ?", id).Update("status", status).Error)
}

func putLedger(t *testing.T, store *LedgerStore, memberID int, date string, assigned, completed []uint) {
	t.Helper()
	ctx := context.Background()
	l, err := store.Get(ctx, memberID, calendar.MustParse(date))
	require.NoError(t, err)
	l.AssignedTaskIDs = assigned
	l.CompletedTaskIDs = completed
	require.NoError(t, store.Put(ctx, l))
}

func getLedger(t *testing.T, store *LedgerStore, memberID int, date string) *model.DayLedger {
	t.Helper()
	l, err := store.Get(context.Background(), memberID, calendar.MustParse(date))
	require.NoError(t, err)
	return l
}

// Every operation must leave assigned and completed disjoint.
func assertDisjoint(t *testing.T, l *model.DayLedger) {
	t.Helper()
	for _, id := range l.AssignedTaskIDs {
		require.False(t, containsID(l.CompletedTaskIDs, id),
			"task %d in both sets on %s", id, l.Date)
	}
}
