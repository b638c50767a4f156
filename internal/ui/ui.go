// Package ui is the terminal front end: tabbed bucket views, priority
// folders, task selection, and the completed/recovery view. All task
// state arrives through store snapshots; every action is a
// fire-and-forget mutation reconciled by the next snapshot.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wuttodo/internal/config"
	"wuttodo/internal/identity"
	"wuttodo/internal/lifecycle"
	"wuttodo/internal/task"
)

type view int

const (
	viewToday view = iota
	viewWeek
	viewLater
	viewCompleted
)

func (v view) title() string {
	switch v {
	case viewToday:
		return "Today"
	case viewWeek:
		return "This Week"
	case viewLater:
		return "Later"
	default:
		return "Completed"
	}
}

func (v view) bucket() task.Bucket {
	switch v {
	case viewWeek:
		return task.BucketThisWeek
	case viewLater:
		return task.BucketLater
	default:
		return task.BucketToday
	}
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

type snapshotMsg task.Snapshot

type actionMsg struct {
	status string
	err    error
}

type Model struct {
	cfg    config.Config
	styles Styles

	ctrl    *lifecycle.Controller
	sweeper *lifecycle.Sweeper
	batch   *lifecycle.Completer
	sel     *lifecycle.Selection

	userID string
	snaps  <-chan task.Snapshot
	cancel func()

	tasks   []task.Task
	view    view
	mode    mode
	cursor  int
	input   textinput.Model
	form    *formState
	pending *task.Task
	status  string
	failed  bool
	now     func() time.Time
}

// New wires the model to its collaborators. With no signed-in identity
// there is no subscription: no tasks, no actions.
func New(cfg config.Config, ids identity.Provider, feed task.Feed, mut task.Mutator) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		cfg:     cfg,
		styles:  DefaultStyles(),
		ctrl:    lifecycle.NewController(mut),
		sweeper: lifecycle.NewSweeper(mut, cfg.RetentionDays),
		batch:   lifecycle.NewCompleter(mut),
		sel:     lifecycle.NewSelection(),
		input:   ti,
		status:  "Press 'a' to add a task.",
		now:     time.Now,
	}

	if userID, ok := ids.Current(); ok {
		m.userID = userID
		m.snaps, m.cancel = feed.Subscribe(userID)
	} else {
		m.status = "Not signed in"
		m.failed = true
	}
	return m
}

func Run(cfg config.Config, ids identity.Provider, feed task.Feed, mut task.Mutator) error {
	m := New(cfg, ids, feed, mut)
	defer m.teardown()
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

// teardown cancels the snapshot subscription. It must run before any
// resubscribe under a different identity.
func (m Model) teardown() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) Init() tea.Cmd {
	if m.snaps == nil {
		return nil
	}
	return waitForSnapshot(m.snaps)
}

func waitForSnapshot(ch <-chan task.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.tasks = msg
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, tea.Batch(waitForSnapshot(m.snaps), m.sweepCmd(task.Snapshot(msg)))
	case actionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.failed = true
		} else {
			m.status = msg.status
			m.failed = false
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

// sweepCmd runs the retention sweep over the snapshot that just
// arrived. Expiry is silent unless something was actually swept.
func (m Model) sweepCmd(snap task.Snapshot) tea.Cmd {
	if m.userID == "" {
		return nil
	}
	return func() tea.Msg {
		if n := m.sweeper.Sweep(context.Background(), m.userID, snap, m.now()); n > 0 {
			return actionMsg{status: fmt.Sprintf("Expired %d completed task(s)", n)}
		}
		return nil
	}
}

// visible flattens the current view's groups into the cursor order.
func (m Model) visible() []task.Task {
	var out []task.Task
	if m.view == viewCompleted {
		for _, g := range task.CompletedGroups(m.tasks) {
			out = append(out, g.Tasks...)
		}
		return out
	}
	for _, g := range task.Arrange(m.tasks, m.view.bucket(), m.now()) {
		out = append(out, g.Tasks...)
	}
	return out
}

func (m Model) cursorTask() (task.Task, bool) {
	rows := m.visible()
	if len(rows) == 0 {
		return task.Task{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		m.teardown()
		return m, tea.Quit
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.visible()))
	case k.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible()))
		}
	case k.NextTab:
		m.view = view((int(m.view) + 1) % 4)
		m.cursor = 0
	case k.PrevTab:
		m.view = view((int(m.view) + 3) % 4)
		m.cursor = 0
	case k.Add:
		if m.view == viewCompleted {
			return m, nil
		}
		return m.startForm(newCreateForm())
	case k.Edit:
		if m.view == viewCompleted {
			return m, nil
		}
		if t, ok := m.cursorTask(); ok {
			return m.startForm(editForm(t))
		}
		m.status = "No tasks to edit"
	case k.Select:
		if m.view == viewCompleted {
			return m, nil
		}
		if t, ok := m.cursorTask(); ok {
			m.sel.Toggle(t.ID)
			m.status = fmt.Sprintf("%d task(s) selected", m.sel.Len())
		}
	case k.Batch:
		if m.view == viewCompleted {
			return m, nil
		}
		if m.sel.Len() > 0 {
			return m, m.batchCompleteCmd()
		}
		if t, ok := m.cursorTask(); ok {
			return m, m.completeCmd(t.ID)
		}
	case k.Recover:
		if m.view != viewCompleted {
			return m, nil
		}
		if t, ok := m.cursorTask(); ok {
			return m, m.recoverCmd(t.ID)
		}
	case k.Delete:
		if t, ok := m.cursorTask(); ok {
			m.mode = modeConfirmDelete
			m.pending = &t
			m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
		}
	}
	return m, nil
}

func (m Model) startForm(f *formState) (tea.Model, tea.Cmd) {
	m.form = f
	m.mode = modeForm
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = f.currentLabel()
	m.input.Focus()
	m.status = "Enter to advance, tab/shift+tab to move, esc to cancel"
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case k.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case "shift+tab":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case k.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index < len(formFields())-1 {
			m.form.index++
			m.input.SetValue(m.form.currentValue())
			m.input.Placeholder = m.form.currentLabel()
			return m, nil
		}
		return m.submitForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// submitForm validates synchronously, then issues the create or edit
// intent without waiting for the store.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := *m.form
	if err := f.draft().Validate(); err != nil {
		m.status = err.Error()
		m.failed = true
		return m, nil
	}
	m.form = nil
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
	return m, m.saveCmd(f)
}

func (m Model) saveCmd(f formState) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if f.taskID == "" {
			if _, err := m.ctrl.Create(ctx, m.userID, f.draft()); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "Added task"}
		}
		if err := m.ctrl.Edit(ctx, m.userID, f.taskID, f.draft()); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Saved task"}
	}
}

func (m Model) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.ctrl.Complete(context.Background(), m.userID, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Completed task"}
	}
}

func (m Model) batchCompleteCmd() tea.Cmd {
	n := m.sel.Len()
	return func() tea.Msg {
		if err := m.batch.CompleteSelected(context.Background(), m.userID, m.sel); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("Completed %d task(s)", n)}
	}
}

func (m Model) recoverCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.ctrl.Recover(context.Background(), m.userID, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Recovered task"}
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.mode = modeList
		m.pending = nil
		return m, nil
	case "y", "Y":
		if m.pending == nil {
			m.mode = modeList
			return m, nil
		}
		id := m.pending.ID
		m.mode = modeList
		m.pending = nil
		return m, func() tea.Msg {
			if err := m.ctrl.Delete(context.Background(), m.userID, id); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "Deleted task"}
		}
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("wutTODO"))
	b.WriteString("  ")
	b.WriteString(m.styles.Meta.Render(m.now().Format("Monday, Jan 2 2006")))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.view == viewCompleted {
		b.WriteString(m.renderCompleted())
	} else {
		b.WriteString(m.renderBucket())
	}

	if m.mode == modeForm && m.form != nil {
		b.WriteString("\n")
		b.WriteString(m.renderForm())
	}

	b.WriteString("\n")
	if m.failed {
		b.WriteString(m.styles.StatusError.Render(m.status))
	} else {
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.renderHelp()))
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, 4)
	for v := viewToday; v <= viewCompleted; v++ {
		if v == m.view {
			parts = append(parts, m.styles.TabActive.Render(v.title()))
		} else {
			parts = append(parts, m.styles.Tab.Render(v.title()))
		}
	}
	return strings.Join(parts, "|")
}

func (m Model) renderBucket() string {
	groups := task.Arrange(m.tasks, m.view.bucket(), m.now())
	total := 0
	for _, g := range groups {
		total += len(g.Tasks)
	}
	cur := clampCursor(m.cursor, total)

	var b strings.Builder
	row := 0
	for _, g := range groups {
		b.WriteString(m.styles.FolderLabel.Render(g.Label))
		b.WriteString("\n")
		if g.Empty() {
			b.WriteString("  ")
			b.WriteString(m.styles.Placeholder.Render(g.Placeholder))
			b.WriteString("\n")
			continue
		}
		for _, t := range g.Tasks {
			b.WriteString(m.renderRow(t, row, cur, true))
			row++
		}
	}
	return b.String()
}

func (m Model) renderCompleted() string {
	groups := task.CompletedGroups(m.tasks)
	if len(groups) == 0 {
		return m.styles.Placeholder.Render("No completed tasks found.") + "\n"
	}
	total := 0
	for _, g := range groups {
		total += len(g.Tasks)
	}
	cur := clampCursor(m.cursor, total)

	var b strings.Builder
	row := 0
	for _, g := range groups {
		b.WriteString(m.styles.DateLabel.Render(g.Label))
		b.WriteString("\n")
		for _, t := range g.Tasks {
			b.WriteString(m.renderRow(t, row, cur, false))
			row++
		}
	}
	return b.String()
}

func (m Model) renderRow(t task.Task, row, cur int, checkbox bool) string {
	cursor := " "
	if row == cur && m.mode == modeList {
		cursor = m.styles.TaskCursor.Render(">")
	}

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(" ")
	if checkbox {
		if m.sel.Has(t.ID) {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	}
	if t.Complete {
		b.WriteString(m.styles.TaskDone.Render(t.Title))
	} else {
		b.WriteString(m.styles.Task.Render(t.Title))
	}

	meta := "Due: " + t.Date
	if t.HasTime() {
		meta += " at " + formatClock(t.Time)
	}
	if t.Location != "" {
		meta += " • " + t.Location
	}
	b.WriteString("  ")
	b.WriteString(m.styles.Meta.Render(meta))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	verb := "Add task"
	if m.form.taskID != "" {
		verb = "Edit task"
	}
	b.WriteString(m.styles.FolderLabel.Render(verb))
	b.WriteString("\n")
	values := []string{m.form.title, m.form.date, m.form.clock, m.form.location, m.form.priority}
	for i, name := range formFields() {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-34s : %s\n", prefix, name, val))
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	if m.view == viewCompleted {
		return fmt.Sprintf("%s/%s move • %s recover • %s delete • %s/%s tabs • %s quit",
			k.Up, k.Down, k.Recover, k.Delete, k.NextTab, k.PrevTab, k.Quit)
	}
	sel := k.Select
	if sel == " " {
		sel = "space"
	}
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s select • %s complete • %s delete • %s/%s tabs • %s quit",
		k.Up, k.Down, k.Add, k.Edit, sel, k.Batch, k.Delete, k.NextTab, k.PrevTab, k.Quit)
}

func formatClock(clock string) string {
	t, err := time.Parse(task.TimeLayout, clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
