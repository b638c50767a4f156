// Package task contains the task record, its classification rules, and
// the interfaces the lifecycle layer uses to talk to a backing store.
package task

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date form tasks carry ("YYYY-MM-DD").
// ISO dates compare lexicographically in calendar order, which the
// completed view relies on.
const DateLayout = "2006-01-02"

// TimeLayout is the optional clock-time form ("HH:MM", 24-hour).
const TimeLayout = "15:04"

// Priority is the task's priority tier, stored as an ordinal.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// CoercePriority maps a submitted ordinal onto a defined tier.
// Unrecognized or missing values become High; that is a deliberate
// default, not an error.
func CoercePriority(v int) Priority {
	switch Priority(v) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(v)
	default:
		return PriorityHigh
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "high"
	}
}

// Label returns the folder heading used by the grouper and the UI.
func (p Priority) Label() string {
	switch p {
	case PriorityMedium:
		return "Medium Priority"
	case PriorityLow:
		return "Low Priority"
	default:
		return "High Priority"
	}
}

// Task is a single task record. Records are passed by value; mutation
// happens only through store intents issued by the lifecycle layer.
type Task struct {
	ID          string     // store-assigned, opaque
	Title       string     // required
	Date        string     // required, DateLayout, due date at local midnight
	Time        string     // optional, TimeLayout
	Location    string     // optional
	Priority    Priority   // 1/2/3, defaults to High
	Complete    bool       //
	CompletedAt *time.Time // set iff Complete
	CreatedAt   time.Time  //
}

// DueAt parses the due date at local midnight in loc. ok is false when
// the stored date is malformed; callers treat such tasks as dateless.
func (t Task) DueAt(loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, t.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// HasTime reports whether the task carries a clock time.
func (t Task) HasTime() bool {
	return t.Time != ""
}

// Draft holds the mutable fields submitted on create and edit.
type Draft struct {
	Title    string
	Date     string
	Time     string
	Location string
	Priority int
}

// Validate checks the required fields and field formats. It runs before
// any store mutation; a failing draft writes nothing.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(d.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return ErrBadDate
	}
	if d.Time != "" {
		if _, err := time.Parse(TimeLayout, d.Time); err != nil {
			return ErrBadTime
		}
	}
	return nil
}
