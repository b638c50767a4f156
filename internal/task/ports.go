package task

import (
	"context"
	"time"
)

// Snapshot is a complete, point-in-time view of one user's tasks as
// delivered by the store feed.
type Snapshot []Task

// Mutator is the mutation side of the task store. All methods are
// single intents: success is only confirmed by a later snapshot, and
// callers never read back their own write.
type Mutator interface {
	// Insert creates a task from a validated draft and returns the
	// store-assigned id. The new record starts incomplete.
	Insert(ctx context.Context, userID string, d Draft) (string, error)

	// UpdateFields replaces the mutable fields of an existing task,
	// leaving completion state untouched.
	UpdateFields(ctx context.Context, userID, id string, d Draft) error

	// SetCompletion marks a task complete (completedAt non-nil) or
	// recovers it (completedAt nil).
	SetCompletion(ctx context.Context, userID, id string, completedAt *time.Time) error

	// Delete removes a task. Deleting an id that no longer exists is a
	// no-op, never an error: independent sweepers may race.
	Delete(ctx context.Context, userID, id string) error
}

// Feed delivers full task-collection snapshots: one on subscribe, then
// one after every observed change. The returned cancel func tears the
// subscription down and must be called before subscribing as a
// different user.
type Feed interface {
	Subscribe(userID string) (<-chan Snapshot, func())
}
