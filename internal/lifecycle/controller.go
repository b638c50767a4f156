// Package lifecycle owns the state transitions a task undergoes and
// issues the corresponding mutation intents to the store. It never
// reads back its own writes; the next snapshot reconciles the view.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wuttodo/internal/task"
)

// Controller drives create, edit, complete, recover and delete. Each
// call issues exactly one store intent; validation failures return
// before anything is written.
type Controller struct {
	store task.Mutator
	now   func() time.Time
}

func NewController(store task.Mutator) *Controller {
	return &Controller{store: store, now: time.Now}
}

// Create validates the draft and inserts a new incomplete task. The
// store assigns and returns the id.
func (c *Controller) Create(ctx context.Context, userID string, d task.Draft) (string, error) {
	if userID == "" {
		return "", task.ErrNoIdentity
	}
	if err := d.Validate(); err != nil {
		return "", err
	}
	d = normalize(d)
	id, err := c.store.Insert(ctx, userID, d)
	if err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	return id, nil
}

// Edit replaces the mutable fields of an existing task. Completion
// state is untouched.
func (c *Controller) Edit(ctx context.Context, userID, id string, d task.Draft) error {
	if userID == "" {
		return task.ErrNoIdentity
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if err := c.store.UpdateFields(ctx, userID, id, normalize(d)); err != nil {
		return fmt.Errorf("edit task: %w", err)
	}
	return nil
}

// Complete marks a task done, stamping completedAt with the current
// instant.
func (c *Controller) Complete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return task.ErrNoIdentity
	}
	completedAt := c.now()
	if err := c.store.SetCompletion(ctx, userID, id, &completedAt); err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

// Recover returns a completed task to the active pool. It re-enters
// temporal classification with its original date.
func (c *Controller) Recover(ctx context.Context, userID, id string) error {
	if userID == "" {
		return task.ErrNoIdentity
	}
	if err := c.store.SetCompletion(ctx, userID, id, nil); err != nil {
		return fmt.Errorf("recover task: %w", err)
	}
	return nil
}

// Delete removes a task outright. No tombstone is kept.
func (c *Controller) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return task.ErrNoIdentity
	}
	if err := c.store.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func normalize(d task.Draft) task.Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	d.Location = strings.TrimSpace(d.Location)
	d.Priority = int(task.CoercePriority(d.Priority))
	return d
}
