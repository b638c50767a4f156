package store

import "wuttodo/internal/task"

type subscriber struct {
	userID string
	ch     chan task.Snapshot
}

// Subscribe registers a snapshot listener for one user. The current
// collection is delivered immediately, then a fresh snapshot follows
// every applied mutation. The cancel func tears the subscription down;
// callers must cancel before subscribing as a different user.
func (s *Store) Subscribe(userID string) (<-chan task.Snapshot, func()) {
	sub := &subscriber{
		userID: userID,
		// Capacity one: a slow consumer coalesces to the latest
		// snapshot, which is the only one that matters.
		ch: make(chan task.Snapshot, 1),
	}

	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = sub
	s.mu.Unlock()

	if snap, err := s.FetchTasks(userID); err == nil {
		sub.push(snap)
	}

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[key]; ok {
			delete(s.subs, key)
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// notify re-reads the user's collection and pushes it to every live
// subscriber for that user.
func (s *Store) notify(userID string) {
	snap, err := s.FetchTasks(userID)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if sub.userID == userID {
			sub.push(snap)
		}
	}
}

// push replaces any queued snapshot with the newest one without ever
// blocking the mutation path.
func (sub *subscriber) push(snap task.Snapshot) {
	for {
		select {
		case sub.ch <- snap:
			return
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
	}
}
