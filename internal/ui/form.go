package ui

import (
	"fmt"
	"strconv"
	"strings"

	"wuttodo/internal/task"
)

// formState walks the user through the task fields one textinput at a
// time. An empty taskID means the form creates; otherwise it edits.
type formState struct {
	taskID   string
	title    string
	date     string
	clock    string
	location string
	priority string
	index    int
}

func formFields() []string {
	return []string{
		"title",
		"due date (YYYY-MM-DD)",
		"time (HH:MM, optional)",
		"location (optional)",
		"priority (1 high, 2 medium, 3 low)",
	}
}

func newCreateForm() *formState {
	return &formState{priority: "1"}
}

func editForm(t task.Task) *formState {
	return &formState{
		taskID:   t.ID,
		title:    t.Title,
		date:     t.Date,
		clock:    t.Time,
		location: t.Location,
		priority: fmt.Sprintf("%d", t.Priority),
	}
}

func (f formState) currentLabel() string {
	return formFields()[f.index]
}

func (f formState) currentValue() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.date
	case 2:
		return f.clock
	case 3:
		return f.location
	case 4:
		return f.priority
	default:
		return ""
	}
}

func (f *formState) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.date = v
	case 2:
		f.clock = v
	case 3:
		f.location = v
	case 4:
		f.priority = v
	}
}

// draft assembles the submitted fields. Priority falls back to the
// High default on anything unparsable.
func (f formState) draft() task.Draft {
	p, err := strconv.Atoi(strings.TrimSpace(f.priority))
	if err != nil {
		p = 0
	}
	return task.Draft{
		Title:    f.title,
		Date:     f.date,
		Time:     f.clock,
		Location: f.location,
		Priority: p,
	}
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
