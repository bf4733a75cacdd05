package store

import "context"

// Navigate records that the user opened a story. The intent is queued and
// handled by Run or Drain; duplicates are kept.
func (s *Store) Navigate(id string) {
	s.mu.Lock()
	s.queue = append(s.queue, id)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued navigations.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Drain handles every queued navigation in FIFO order and returns how many
// remote calls were issued.
func (s *Store) Drain() int {
	s.mu.Lock()
	ids := s.queue
	s.queue = nil
	s.mu.Unlock()

	issued := 0
	for _, id := range ids {
		s.GetOrCreateStory(id)
		if s.RequestStoryComments(id) {
			issued++
		}
	}
	return issued
}

// Run drains the navigation queue whenever Navigate is called, until ctx is
// done.
func (s *Store) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
			s.Drain()
		}
	}
}
