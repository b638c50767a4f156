package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wuttodo/internal/config"
	"wuttodo/internal/identity"
	"wuttodo/internal/task"
)

type stubFeed struct {
	ch chan task.Snapshot
}

func (f stubFeed) Subscribe(string) (<-chan task.Snapshot, func()) {
	return f.ch, func() {}
}

type stubMutator struct {
	completions map[string]*time.Time
	deletes     []string
}

func newStubMutator() *stubMutator {
	return &stubMutator{completions: make(map[string]*time.Time)}
}

func (m *stubMutator) Insert(context.Context, string, task.Draft) (string, error) {
	return "new-id", nil
}

func (m *stubMutator) UpdateFields(context.Context, string, string, task.Draft) error {
	return nil
}

func (m *stubMutator) SetCompletion(_ context.Context, _ string, id string, at *time.Time) error {
	m.completions[id] = at
	return nil
}

func (m *stubMutator) Delete(_ context.Context, _ string, id string) error {
	m.deletes = append(m.deletes, id)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		User:          "local",
		RetentionDays: 7,
		Keys: config.Keymap{
			Quit: "q", Add: "a", Edit: "e", Select: " ", Batch: "c",
			Recover: "r", Delete: "d", Up: "k", Down: "j",
			NextTab: "tab", PrevTab: "shift+tab", Confirm: "enter", Cancel: "esc",
		},
	}
}

func testModel(t *testing.T, tasks []task.Task) Model {
	t.Helper()
	m := New(testConfig(), identity.Static("local"), stubFeed{ch: make(chan task.Snapshot, 1)}, newStubMutator())
	m.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	m.tasks = tasks
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_NoIdentity(t *testing.T) {
	m := New(testConfig(), identity.Static(""), stubFeed{}, newStubMutator())
	assert.Empty(t, m.userID)
	assert.Equal(t, "Not signed in", m.status)
	assert.Nil(t, m.Init())
}

func TestSnapshotUpdatesTasks(t *testing.T) {
	m := testModel(t, nil)
	snap := task.Snapshot{{ID: "a", Title: "Call Alice", Date: "2025-06-01", Priority: task.PriorityLow}}

	next, cmd := m.Update(snapshotMsg(snap))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Len(t, m.tasks, 1)
	assert.Contains(t, m.View(), "Call Alice")
}

func TestTabSwitching(t *testing.T) {
	m := testModel(t, nil)
	assert.Equal(t, viewToday, m.view)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, viewWeek, m.view)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	assert.Equal(t, viewToday, m.view)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	assert.Equal(t, viewCompleted, m.view)
}

func TestSelectToggle(t *testing.T) {
	tasks := []task.Task{{ID: "a", Title: "X", Date: "2025-06-01", Priority: task.PriorityHigh}}
	m := testModel(t, tasks)

	next, _ := m.Update(key(" "))
	m = next.(Model)
	assert.True(t, m.sel.Has("a"))
	assert.Contains(t, m.View(), "[x]")

	next, _ = m.Update(key(" "))
	m = next.(Model)
	assert.False(t, m.sel.Has("a"))
}

func TestCursorFollowsSelectedRow(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Title: "Alpha", Date: "2025-06-01", Priority: task.PriorityHigh},
		{ID: "b", Title: "Beta", Date: "2025-06-01", Priority: task.PriorityHigh},
		{ID: "c", Title: "Gamma", Date: "2025-06-01", Priority: task.PriorityHigh},
	}
	m := testModel(t, tasks)

	next, _ := m.Update(key("j"))
	m = next.(Model)

	var marked []string
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.HasPrefix(line, ">") {
			marked = append(marked, line)
		}
	}
	require.Len(t, marked, 1)
	assert.Contains(t, marked[0], "Beta")
}

func TestViewPlaceholders(t *testing.T) {
	m := testModel(t, nil)
	out := m.View()
	assert.Contains(t, out, "High Priority")
	assert.Contains(t, out, "No high priority tasks")
	assert.Contains(t, out, "No medium priority tasks")
	assert.Contains(t, out, "No low priority tasks")
}

func TestViewOverdueGroupInToday(t *testing.T) {
	tasks := []task.Task{{ID: "a", Title: "Old thing", Date: "2025-05-20", Priority: task.PriorityHigh}}
	m := testModel(t, tasks)

	assert.Contains(t, m.View(), "Overdue")

	m.view = viewWeek
	assert.NotContains(t, m.View(), "Old thing")
}

func TestCompletedViewShowsDateGroups(t *testing.T) {
	done := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		{ID: "a", Title: "Done thing", Date: "2025-05-30", Complete: true, CompletedAt: &done},
	}
	m := testModel(t, tasks)
	m.view = viewCompleted

	out := m.View()
	assert.Contains(t, out, "May 30, 2025")
	assert.Contains(t, out, "Done thing")
}

func TestDeleteConfirmFlow(t *testing.T) {
	tasks := []task.Task{{ID: "a", Title: "X", Date: "2025-06-01", Priority: task.PriorityHigh}}
	m := testModel(t, tasks)

	next, _ := m.Update(key("d"))
	m = next.(Model)
	assert.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.status, "Delete")

	next, _ = m.Update(key("n"))
	m = next.(Model)
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.pending)
}

func TestDeleteConfirmYesIssuesIntent(t *testing.T) {
	mut := newStubMutator()
	m := New(testConfig(), identity.Static("local"), stubFeed{ch: make(chan task.Snapshot, 1)}, mut)
	m.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	m.tasks = []task.Task{{ID: "a", Title: "X", Date: "2025-06-01", Priority: task.PriorityHigh}}

	next, _ := m.Update(key("d"))
	m = next.(Model)
	next, cmd := m.Update(key("y"))
	m = next.(Model)
	require.NotNil(t, cmd)

	msg := cmd()
	res, ok := msg.(actionMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.Equal(t, []string{"a"}, mut.deletes)
}

func TestFormFlow(t *testing.T) {
	m := testModel(t, nil)

	next, _ := m.Update(key("a"))
	m = next.(Model)
	require.Equal(t, modeForm, m.mode)
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Add task")

	// Esc backs out without touching anything.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.form)
}

func TestFormValidationKeepsFormOpen(t *testing.T) {
	m := testModel(t, nil)
	next, _ := m.Update(key("a"))
	m = next.(Model)

	// Walk every field with empty input: submit fails on title.
	for range formFields() {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = next.(Model)
	}
	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, task.ErrEmptyTitle.Error(), m.status)
}

func TestBatchKeyCompletesSelection(t *testing.T) {
	mut := newStubMutator()
	m := New(testConfig(), identity.Static("local"), stubFeed{ch: make(chan task.Snapshot, 1)}, mut)
	m.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	m.tasks = []task.Task{
		{ID: "a", Title: "A", Date: "2025-06-01", Priority: task.PriorityHigh},
		{ID: "b", Title: "B", Date: "2025-06-01", Priority: task.PriorityHigh},
	}
	m.sel.Toggle("a")
	m.sel.Toggle("b")

	_, cmd := m.Update(key("c"))
	require.NotNil(t, cmd)

	msg := cmd()
	res, ok := msg.(actionMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.Contains(t, mut.completions, "a")
	assert.Contains(t, mut.completions, "b")
	assert.Equal(t, 0, m.sel.Len())
}

func TestRecoverOnlyInCompletedView(t *testing.T) {
	mut := newStubMutator()
	done := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	m := New(testConfig(), identity.Static("local"), stubFeed{ch: make(chan task.Snapshot, 1)}, mut)
	m.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	m.tasks = []task.Task{{ID: "a", Title: "X", Date: "2025-05-30", Complete: true, CompletedAt: &done}}

	// Active view: recover key does nothing.
	_, cmd := m.Update(key("r"))
	assert.Nil(t, cmd)

	m.view = viewCompleted
	_, cmd = m.Update(key("r"))
	require.NotNil(t, cmd)
	msg := cmd()
	res, ok := msg.(actionMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	require.Contains(t, mut.completions, "a")
	assert.Nil(t, mut.completions["a"])
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "11:58 PM", formatClock("23:58"))
	assert.Equal(t, "9:00 AM", formatClock("09:00"))
	assert.Equal(t, "12:00 PM", formatClock("12:00"))
	assert.Equal(t, "junk", formatClock("junk"))
}
