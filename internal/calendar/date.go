// Package calendar wraps the yyyy-mm-dd date strings used as ledger
// keys in a small value type so comparison, arithmetic and the
// past/present/future classification live in one place.
package calendar

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is an opaque calendar day. The zero value is invalid; build one
// with Parse, Today or FromTime.
type Date struct {
	t time.Time
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParse is for literals in tests and seed data.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func FromTime(t time.Time) Date {
	y, m, day := t.Date()
	return Date{t: time.Date(y, m, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date { return FromTime(time.Now()) }

func (d Date) IsZero() bool   { return d.t.IsZero() }
func (d Date) String() string { return d.t.Format(layout) }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// DaysUntil returns o - d in whole days; negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t) / (24 * time.Hour))
}

// StartOfWeek returns the Monday of d's week.
func (d Date) StartOfWeek() Date {
	wd := int(d.t.Weekday())
	if wd == 0 { // Sunday
		wd = 7
	}
	return d.AddDays(1 - wd)
}

// Class places a date relative to a reference "today".
type Class int

const (
	Past Class = iota
	Present
	Future
)

func (c Class) String() string {
	switch c {
	case Past:
		return "past"
	case Present:
		return "present"
	default:
		return "future"
	}
}

func (d Date) Classify(today Date) Class {
	switch {
	case d.Before(today):
		return Past
	case d.After(today):
		return Future
	default:
		return Present
	}
}

// Range returns all dates from from to to inclusive, ascending. Empty
// when from is after to.
func Range(from, to Date) []Date {
	if from.After(to) {
		return nil
	}
	out := make([]Date, 0, from.DaysUntil(to)+1)
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}
