package task

import "time"

// Bucket is the temporal classification of a non-completed task at a
// given instant.
type Bucket int

const (
	BucketOverdue Bucket = iota
	BucketToday
	BucketThisWeek
	BucketLater
)

func (b Bucket) String() string {
	switch b {
	case BucketOverdue:
		return "Overdue"
	case BucketToday:
		return "Today"
	case BucketThisWeek:
		return "This Week"
	default:
		return "Later"
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsOverdue reports whether the task is incomplete and due strictly
// before the start of now's calendar day.
func IsOverdue(t Task, now time.Time) bool {
	if t.Complete {
		return false
	}
	due, ok := t.DueAt(now.Location())
	if !ok {
		return false
	}
	return due.Before(startOfDay(now))
}

// IsToday matches on calendar date components, not elapsed time.
func IsToday(t Task, now time.Time) bool {
	due, ok := t.DueAt(now.Location())
	if !ok {
		return false
	}
	return due.Year() == now.Year() && due.Month() == now.Month() && due.Day() == now.Day()
}

// IsThisWeek reports whether the due date falls in the next seven
// calendar days including today. The window is anchored on the day the
// check runs, not on a fixed weekday: inclusive from the start of today
// through the end of today+6.
func IsThisWeek(t Task, now time.Time) bool {
	due, ok := t.DueAt(now.Location())
	if !ok {
		return false
	}
	start := startOfDay(now)
	// Due dates are midnight instants, so "before start+7d" is exactly
	// "on or before the end of day start+6d".
	return !due.Before(start) && due.Before(start.AddDate(0, 0, 7))
}

// Classify maps a task to its single temporal bucket. ok is false for
// completed tasks, which belong to the retention model instead.
func Classify(t Task, now time.Time) (Bucket, bool) {
	if t.Complete {
		return 0, false
	}
	switch {
	case IsOverdue(t, now):
		return BucketOverdue, true
	case IsToday(t, now):
		return BucketToday, true
	case IsThisWeek(t, now):
		return BucketThisWeek, true
	default:
		return BucketLater, true
	}
}

// ForBucket filters a snapshot down to the tasks a bucket's view shows.
// Unlike Classify this follows the tab semantics: the ThisWeek view
// includes today's tasks, and the Later view shows every incomplete
// task regardless of date.
func ForBucket(tasks []Task, b Bucket, now time.Time) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Complete {
			continue
		}
		switch b {
		case BucketOverdue:
			if !IsOverdue(t, now) {
				continue
			}
		case BucketToday:
			if !IsToday(t, now) {
				continue
			}
		case BucketThisWeek:
			if !IsThisWeek(t, now) {
				continue
			}
		case BucketLater:
			// All incomplete tasks.
		}
		out = append(out, t)
	}
	return out
}
