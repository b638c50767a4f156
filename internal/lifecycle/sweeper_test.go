package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wuttodo/internal/task"
)

func completedTask(id string, completedAt time.Time) task.Task {
	return task.Task{
		ID:          id,
		Title:       "done " + id,
		Date:        "2025-06-01",
		Complete:    true,
		CompletedAt: &completedAt,
	}
}

func TestSweep_StrictlyExceedsWindow(t *testing.T) {
	store := newMockStore()
	sw := NewSweeper(store, 7)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tasks := []task.Task{
		// Exactly 7.0 days old: not yet swept.
		completedTask("boundary", now.Add(-7*24*time.Hour)),
		// 7.1 days old: swept.
		completedTask("past", now.Add(-time.Duration(7.1*24*float64(time.Hour)))),
		completedTask("fresh", now.Add(-24*time.Hour)),
	}

	n := sw.Sweep(context.Background(), "u1", tasks, now)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"past"}, store.deletes)
}

func TestSweep_SevenDaysScenario(t *testing.T) {
	store := newMockStore()
	sw := NewSweeper(store, 7)
	completed := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	tasks := []task.Task{completedTask("t1", completed)}

	// One second shy of the window: survives.
	before := time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, 0, sw.Sweep(context.Background(), "u1", tasks, before))
	assert.Empty(t, store.deletes)

	// One second past: swept.
	after := time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, 1, sw.Sweep(context.Background(), "u1", tasks, after))
	assert.Equal(t, []string{"t1"}, store.deletes)
}

func TestSweep_SkipsActiveAndUnstamped(t *testing.T) {
	store := newMockStore()
	sw := NewSweeper(store, 7)
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tasks := []task.Task{
		{ID: "active", Date: "2025-01-01"},
		{ID: "nostamp", Date: "2025-01-01", Complete: true}, // no completedAt
	}

	assert.Equal(t, 0, sw.Sweep(context.Background(), "u1", tasks, now))
	assert.Empty(t, store.deletes)
}

func TestSweep_DeleteFailureTolerated(t *testing.T) {
	store := newMockStore()
	store.deleteErr = errors.New("transient")
	sw := NewSweeper(store, 7)
	now := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	tasks := []task.Task{completedTask("t1", now.AddDate(0, 0, -10))}

	// Best effort: the failed intent is counted as issued and nothing
	// is retried here.
	require.NotPanics(t, func() {
		sw.Sweep(context.Background(), "u1", tasks, now)
	})
}

func TestSweep_DefaultRetention(t *testing.T) {
	sw := NewSweeper(newMockStore(), 0)
	assert.Equal(t, time.Duration(RetentionDays)*24*time.Hour, sw.retention)
}

func TestSweep_NoIdentity(t *testing.T) {
	store := newMockStore()
	sw := NewSweeper(store, 7)
	now := time.Now()

	tasks := []task.Task{completedTask("t1", now.AddDate(0, 0, -10))}
	assert.Equal(t, 0, sw.Sweep(context.Background(), "", tasks, now))
	assert.Empty(t, store.deletes)
}
