package lifecycle

import (
	"context"
	"time"

	"wuttodo/internal/task"
)

// RetentionDays is how long completed tasks are kept before the
// sweeper retires them.
const RetentionDays = 7

// Sweeper scans completed tasks on every snapshot and issues delete
// intents for ones past the retention window. The sweep is best-effort
// and idempotent: failures are not retried, and racing with another
// observer's sweep (or a user's recover) is tolerated.
type Sweeper struct {
	store     task.Mutator
	retention time.Duration
}

// NewSweeper builds a sweeper with a retention window of days days; a
// non-positive value falls back to RetentionDays.
func NewSweeper(store task.Mutator, days int) *Sweeper {
	if days <= 0 {
		days = RetentionDays
	}
	return &Sweeper{
		store:     store,
		retention: time.Duration(days) * 24 * time.Hour,
	}
}

// Sweep issues a delete intent for every completed task whose elapsed
// time since completion strictly exceeds the retention window. A task
// completed exactly at the boundary survives until the next snapshot.
// Returns the number of intents issued.
func (s *Sweeper) Sweep(ctx context.Context, userID string, tasks []task.Task, now time.Time) int {
	if userID == "" {
		return 0
	}
	swept := 0
	for _, t := range tasks {
		if !t.Complete || t.CompletedAt == nil {
			continue
		}
		if now.Sub(*t.CompletedAt) <= s.retention {
			continue
		}
		// Fire and forget. A failed or raced delete is retried by a
		// later snapshot's sweep, not here.
		_ = s.store.Delete(ctx, userID, t.ID)
		swept++
	}
	return swept
}
