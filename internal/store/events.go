package store

import "fmt"

// EventKind identifies a committed store mutation.
type EventKind int

const (
	StoryAdded EventKind = iota
	StoryUpdated
	FetchStarted
	CommentsLoaded
	FetchFailed
	FrontPageLoaded
	FrontPageFailed
)

func (k EventKind) String() string {
	switch k {
	case StoryAdded:
		return "story_added"
	case StoryUpdated:
		return "story_updated"
	case FetchStarted:
		return "fetch_started"
	case CommentsLoaded:
		return "comments_loaded"
	case FetchFailed:
		return "fetch_failed"
	case FrontPageLoaded:
		return "front_page_loaded"
	case FrontPageFailed:
		return "front_page_failed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is delivered to subscribers after a mutation is committed.
// StoryID and Version are empty for front-page events.
type Event struct {
	Kind    EventKind
	StoryID string
	Version uint64
	Err     error
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every future event and returns a function that
// removes it. Events are delivered in commit order, outside the store lock, so
// fn may read from the store. fn must not block for long: it runs on the
// goroutine that committed the mutation.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// emit queues an event. Must be called with s.mu held.
func (s *Store) emit(ev Event) {
	s.pending = append(s.pending, ev)
}

// flush delivers queued events. Only one goroutine delivers at a time; the
// others leave their events to it, which keeps delivery in commit order and
// lets subscribers call back into the store.
func (s *Store) flush() {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	for len(s.pending) > 0 {
		evs := s.pending
		s.pending = nil
		subs := append([]subscriber(nil), s.subs...)
		s.mu.Unlock()

		for _, ev := range evs {
			for _, sub := range subs {
				sub.fn(ev)
			}
		}

		s.mu.Lock()
	}
	s.dispatching = false
	s.mu.Unlock()
}
