package task

import (
	"sort"
	"time"
)

// Group is one priority folder of a bucket view. Empty groups are still
// emitted with a placeholder so the presentation layer never
// special-cases emptiness.
type Group struct {
	Label       string
	Placeholder string
	Tasks       []Task
}

// Empty reports whether the group holds no tasks.
func (g Group) Empty() bool {
	return len(g.Tasks) == 0
}

// Arrange produces the priority-ordered groups for a bucket view:
// High, Medium, Low, each in stable snapshot order with ties broken by
// ascending time-of-day when both tasks carry a time. The Today view
// additionally gets a leading Overdue group when any overdue tasks
// exist.
func Arrange(tasks []Task, b Bucket, now time.Time) []Group {
	matched := ForBucket(tasks, b, now)

	var groups []Group
	if b == BucketToday {
		if overdue := ForBucket(tasks, BucketOverdue, now); len(overdue) > 0 {
			groups = append(groups, Group{
				Label: BucketOverdue.String(),
				Tasks: sortByClock(overdue),
			})
		}
	}
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		groups = append(groups, Group{
			Label:       p.Label(),
			Placeholder: "No " + p.String() + " priority tasks",
			Tasks:       sortByClock(byPriority(matched, p)),
		})
	}
	return groups
}

// DateGroup is one due-date section of the completed view.
type DateGroup struct {
	Date  string // DateLayout key
	Label string // human form, e.g. "June 1, 2025"
	Tasks []Task
}

// CompletedGroups arranges completed tasks by due date, most recent
// first. Within a date, tasks sort ascending by time-of-day; entries
// without a time keep their relative order.
func CompletedGroups(tasks []Task) []DateGroup {
	byDate := map[string][]Task{}
	for _, t := range tasks {
		if !t.Complete || t.Date == "" {
			continue
		}
		byDate[t.Date] = append(byDate[t.Date], t)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, DateGroup{
			Date:  d,
			Label: dateLabel(d),
			Tasks: sortByClock(byDate[d]),
		})
	}
	return groups
}

func byPriority(tasks []Task, p Priority) []Task {
	var out []Task
	for _, t := range tasks {
		if CoercePriority(int(t.Priority)) == p {
			out = append(out, t)
		}
	}
	return out
}

// sortByClock orders tasks ascending by time-of-day, comparing only
// pairs where both tasks have a time. HH:MM strings compare correctly
// as text. The sort is stable so timeless tasks are not reordered.
func sortByClock(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].HasTime() || !out[j].HasTime() {
			return false
		}
		return out[i].Time < out[j].Time
	})
	return out
}

func dateLabel(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("January 2, 2006")
}
