package service

import (
	"fmt"

	"daily-board/internal/calendar"
)

// Rejection reason codes. These are expected, user-facing outcomes,
// not errors.
const (
	ReasonFutureDateNotCompletable = "FutureDateNotCompletable"
	ReasonMustViewTodayToComplete  = "MustViewTodayToComplete"
	ReasonPastDateImmutable        = "PastDateImmutable"
)

// Rejection is a denied mutation with the dates the caller needs to
// explain it.
type Rejection struct {
	Code       string `json:"code"`
	Date       string `json:"date"`
	Today      string `json:"today"`
	ViewedDate string `json:"viewed_date,omitempty"`
}

func (r *Rejection) Message() string {
	switch r.Code {
	case ReasonFutureDateNotCompletable:
		return fmt.Sprintf("%s is in the future and cannot be completed yet", r.Date)
	case ReasonMustViewTodayToComplete:
		return fmt.Sprintf("tasks can only be completed while today (%s) is the open day, not %s", r.Today, r.ViewedDate)
	case ReasonPastDateImmutable:
		return fmt.Sprintf("%s has passed and can no longer be edited", r.Date)
	default:
		return r.Code
	}
}

// LockGate decides which ledger mutations the calendar permits. The
// reference clock is injected; the gate never reads time.Now itself.
type LockGate struct {
	now func() calendar.Date
}

func NewLockGate(now func() calendar.Date) *LockGate { return &LockGate{now: now} }

// CheckComplete gates marking a task completed. The target date must
// not be in the future, and the day the user has open must be today.
// Completing an overdue task from today's card is fine; completing
// anything from yesterday's card is not.
func (g *LockGate) CheckComplete(date, viewed calendar.Date) *Rejection {
	today := g.now()
	if date.Classify(today) == calendar.Future {
		return &Rejection{Code: ReasonFutureDateNotCompletable, Date: date.String(), Today: today.String(), ViewedDate: viewed.String()}
	}
	if !viewed.Equal(today) {
		return &Rejection{Code: ReasonMustViewTodayToComplete, Date: date.String(), Today: today.String(), ViewedDate: viewed.String()}
	}
	return nil
}

// CheckRevert gates moving a completed task back to assigned. Only a
// past day is locked; same-day and ahead-of-time completions may be
// taken back.
func (g *LockGate) CheckRevert(date calendar.Date) *Rejection {
	today := g.now()
	if date.Classify(today) == calendar.Past {
		return &Rejection{Code: ReasonPastDateImmutable, Date: date.String(), Today: today.String()}
	}
	return nil
}

// CheckDayEdit gates check-in/out edits, absence toggles and manual
// assignment: past days are read-only, everything else is open.
func (g *LockGate) CheckDayEdit(date calendar.Date) *Rejection {
	today := g.now()
	if date.Classify(today) == calendar.Past {
		return &Rejection{Code: ReasonPastDateImmutable, Date: date.String(), Today: today.String()}
	}
	return nil
}
