package model

import (
	"time"

	"gorm.io/gorm"
)

type Member struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
	Team     string `json:"team"`
}

// Task is the task board's row. This service only ever reads it; the
// board owns status changes and due-date edits.
type Task struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `json:"title"`
	AssigneeID int    `gorm:"index" json:"assignee_id"`
	DueDate    string `gorm:"type:date;index" json:"due_date"`
	Status     string `json:"status"`
	Team       string `json:"team"`
}

// DayLedger is the per-member per-date work record. A task id lives in
// AssignedTaskIDs xor CompletedTaskIDs, never both.
type DayLedger struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	MemberID         int       `gorm:"not null;uniqueIndex:uk_member_date" json:"member_id"`
	Date             string    `gorm:"type:date;not null;uniqueIndex:uk_member_date" json:"date"`
	AssignedTaskIDs  []uint    `gorm:"serializer:json" json:"assigned_task_ids"`
	CompletedTaskIDs []uint    `gorm:"serializer:json" json:"completed_task_ids"`
	CheckInTime      string    `json:"check_in_time"`
	CheckOutTime     string    `json:"check_out_time"`
	IsAbsent         bool      `json:"is_absent"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

func (Member) TableName() string    { return "members" }
func (Task) TableName() string      { return "tasks" }
func (DayLedger) TableName() string { return "day_ledgers" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Member{}, &Task{}, &DayLedger{})
}
