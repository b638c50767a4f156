package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"wuttodo/internal/task"
)

// Selection is the session-local set of task ids the user has checked.
// It is never persisted.
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips membership and reports whether the id is now selected.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids in a stable order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

// Completer applies the Active→Completed transition to a whole
// selection at once.
type Completer struct {
	store task.Mutator
	now   func() time.Time
}

func NewCompleter(store task.Mutator) *Completer {
	return &Completer{store: store, now: time.Now}
}

// CompleteSelected issues a completion mutation for every selected id
// concurrently. Individual failures do not roll back completions that
// already landed; the joined error reports which ids failed. The
// selection is cleared afterward regardless of outcome.
func (b *Completer) CompleteSelected(ctx context.Context, userID string, sel *Selection) error {
	defer sel.Clear()
	if userID == "" {
		return task.ErrNoIdentity
	}
	ids := sel.IDs()
	if len(ids) == 0 {
		return nil
	}

	completedAt := b.now()
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if err := b.store.SetCompletion(ctx, userID, id, &completedAt); err != nil {
				errs[i] = fmt.Errorf("complete %s: %w", id, err)
			}
		}(i, id)
	}
	wg.Wait()
	return errors.Join(errs...)
}
