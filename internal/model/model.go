package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
	Team   string `json:"team"`
}

type ToggleTaskRequest struct {
	TaskID     uint   `json:"task_id" binding:"required"`
	Completed  bool   `json:"completed"`
	ViewedDate string `json:"viewed_date" binding:"required"`
}

type CrossDayToggleRequest struct {
	TaskID     uint   `json:"task_id" binding:"required"`
	DueDate    string `json:"due_date" binding:"required"`
	Completed  bool   `json:"completed"`
	ViewedDate string `json:"viewed_date" binding:"required"`
}

type AssignTaskRequest struct {
	TaskID uint `json:"task_id" binding:"required"`
}

type AbsenceRequest struct {
	Absent bool `json:"absent"`
}

type AttendanceRequest struct {
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

type RolloverRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// TaskView is a resolved task for display; State says which set of the
// ledger the id came from.
type TaskView struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
	Status  string `json:"status"`
	Overdue bool   `json:"overdue"`
	State   string `json:"state"` // "assigned" or "completed"
}

// DayView is what the UI renders for one expanded day card.
type DayView struct {
	Date      string     `json:"date"`
	Ledger    DayLedger  `json:"ledger"`
	Assigned  []TaskView `json:"assigned"`
	Completed []TaskView `json:"completed"`
	Editable  bool       `json:"editable"`
}

type WeekView struct {
	Start string    `json:"start"`
	Days  []DayView `json:"days"`
}
