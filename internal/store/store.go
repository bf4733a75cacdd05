// Package store holds the client-side state: every known story, the queue of
// pending navigations, and the rules that decide when comments are fetched.
package store

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/fragmede/frontpage/internal/api"
	"github.com/fragmede/frontpage/internal/model"
)

// Persister receives stories, comment trees and the front-page ranking after
// they are committed.
type Persister interface {
	PutStory(s model.Story) error
	PutComments(storyID string, comments []model.Comment) error
	PutRanking(ids []string) error
}

// Store owns all Story and Comment instances. Callers get snapshots; the only
// way to change state is through the Store's methods.
type Store struct {
	source    api.Source
	log       logrus.FieldLogger
	persist   Persister
	freshness FreshnessPolicy
	dupPolicy DuplicatePolicy
	now       func() time.Time

	mu           sync.Mutex
	stories      map[string]*model.Story
	order        []string
	ranking      []string
	queue        []string
	frontPageErr error
	subs         []subscriber
	nextSub      int
	pending      []Event
	dispatching  bool

	frontPage singleflight.Group
	inflight  sync.WaitGroup
	wake      chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// WithPersister writes committed stories and comments through to p.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

// WithFreshness replaces the NoExpiry cache policy.
func WithFreshness(f FreshnessPolicy) Option {
	return func(s *Store) { s.freshness = f }
}

// WithDuplicatePolicy sets how duplicate front-page ids are resolved.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(s *Store) { s.dupPolicy = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store reading from src.
func New(src api.Source, opts ...Option) *Store {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Store{
		source:    src,
		log:       discard,
		freshness: NoExpiry{},
		dupPolicy: LastWriteWins,
		now:       time.Now,
		stories:   make(map[string]*model.Story),
		wake:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadFrontPage fetches the front page and merges every story into the store.
// A story that already exists keeps its comments and fetch state; only its
// descriptive fields are overwritten. Concurrent calls share one request.
func (s *Store) LoadFrontPage(ctx context.Context) error {
	_, err, _ := s.frontPage.Do("front", func() (interface{}, error) {
		return nil, s.loadFrontPage(ctx)
	})
	return err
}

func (s *Store) loadFrontPage(ctx context.Context) error {
	recs, err := s.source.FrontPage(ctx)
	if err != nil {
		s.log.WithError(err).Warn("front page fetch failed")
		s.mu.Lock()
		s.frontPageErr = err
		s.emit(Event{Kind: FrontPageFailed, Err: err})
		s.mu.Unlock()
		s.flush()
		return err
	}

	recs = dedupe(recs, s.dupPolicy)
	merged := make([]model.Story, 0, len(recs))
	ranking := make([]string, 0, len(recs))

	s.mu.Lock()
	for _, rec := range recs {
		ranking = append(ranking, rec.ID)
		incoming := model.StoryFromRecord(rec)
		if existing, ok := s.stories[incoming.ID]; ok {
			existing.MergeFrom(incoming)
			existing.Version++
			s.emit(Event{Kind: StoryUpdated, StoryID: existing.ID, Version: existing.Version})
			merged = append(merged, existing.Clone())
			continue
		}
		incoming.Version = 1
		s.insertLocked(&incoming)
		s.emit(Event{Kind: StoryAdded, StoryID: incoming.ID, Version: incoming.Version})
		merged = append(merged, incoming.Clone())
	}
	s.ranking = ranking
	s.frontPageErr = nil
	s.emit(Event{Kind: FrontPageLoaded})
	s.mu.Unlock()
	s.flush()

	s.log.WithField("stories", len(merged)).Debug("front page loaded")
	if s.persist != nil {
		for _, st := range merged {
			if err := s.persist.PutStory(st); err != nil {
				s.log.WithError(err).WithField("story", st.ID).Warn("persisting story")
			}
		}
		if err := s.persist.PutRanking(ranking); err != nil {
			s.log.WithError(err).Warn("persisting front page ranking")
		}
	}
	return nil
}

// FrontPageErr returns the error of the last front-page load, or nil if it
// succeeded or never ran.
func (s *Store) FrontPageErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frontPageErr
}

// GetStory returns a snapshot of the story with the given id.
func (s *Store) GetStory(id string) (model.Story, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stories[id]
	if !ok {
		return model.Story{}, false
	}
	return st.Clone(), true
}

// GetOrCreateStory returns the story with the given id, registering an empty
// placeholder first if the id is unknown.
func (s *Store) GetOrCreateStory(id string) model.Story {
	s.mu.Lock()
	st := s.getOrCreateLocked(id)
	snap := st.Clone()
	s.mu.Unlock()
	s.flush()
	return snap
}

// FrontPage returns snapshots of the stories of the latest front page, in
// ranking order. Stories that dropped off the front page stay reachable
// through GetStory but are not listed.
func (s *Store) FrontPage() []model.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Story, 0, len(s.ranking))
	for _, id := range s.ranking {
		if st, ok := s.stories[id]; ok {
			out = append(out, st.Clone())
		}
	}
	return out
}

// Stories returns snapshots of all known stories in insertion order,
// including placeholders and stories no longer on the front page.
func (s *Store) Stories() []model.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Story, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.stories[id].Clone())
	}
	return out
}

// Len returns the number of known stories.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stories)
}

// InFlight returns the number of stories with an outstanding comments fetch.
func (s *Store) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.stories {
		if st.IsFetching() {
			n++
		}
	}
	return n
}

// RequestStoryComments makes sure the comments of a story are loaded or being
// loaded. It is safe to call on every render: while a fetch is outstanding, or
// once comments are cached, it does nothing. It reports whether a remote call
// was issued.
func (s *Store) RequestStoryComments(id string) bool {
	s.mu.Lock()
	st := s.getOrCreateLocked(id)
	log := s.log.WithField("story", id)
	now := s.now()

	if st.IsFetching() {
		s.mu.Unlock()
		s.flush()
		log.Debug("already fetching")
		return false
	}
	refresh := false
	if len(st.Comments) > 0 {
		if !s.freshness.Stale(*st, now) {
			s.mu.Unlock()
			s.flush()
			log.Debug("cache hit")
			return false
		}
		refresh = true
	}

	st.Status = model.Fetching
	st.FetchTime = now
	st.LastErr = nil
	st.Version++
	s.emit(Event{Kind: FetchStarted, StoryID: id, Version: st.Version})
	s.inflight.Add(1)
	s.mu.Unlock()
	s.flush()

	log.Debug("querying API")
	go s.fetchComments(id, refresh)
	return true
}

// fetchComments runs one remote comments call to completion and applies the
// result to whatever story is registered under id at that point.
func (s *Store) fetchComments(id string, refresh bool) {
	defer s.inflight.Done()
	log := s.log.WithField("story", id)

	recs, err := s.source.Comments(context.Background(), id)

	s.mu.Lock()
	st, ok := s.stories[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if err != nil {
		st.Status = model.Failed
		st.LastErr = err
		st.Version++
		s.emit(Event{Kind: FetchFailed, StoryID: id, Version: st.Version, Err: err})
		s.mu.Unlock()
		s.flush()
		log.WithError(err).Warn("comments fetch failed")
		return
	}

	comments := model.CommentsFromRecords(recs)
	if refresh {
		st.Comments = comments
	} else {
		st.Comments = append(st.Comments, comments...)
	}
	st.Status = model.Fetched
	st.Version++
	s.emit(Event{Kind: CommentsLoaded, StoryID: id, Version: st.Version})
	all := st.Clone().Comments
	started := st.FetchTime
	s.mu.Unlock()
	s.flush()

	log.WithFields(logrus.Fields{
		"comments": len(comments),
		"took":     s.now().Sub(started).String(),
	}).Debug("comments fetch complete")

	if s.persist != nil {
		if err := s.persist.PutComments(id, all); err != nil {
			log.WithError(err).Warn("persisting comments")
		}
	}
}

// Wait blocks until every comments fetch issued so far has completed.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Restore seeds the store with previously persisted stories and the ranking
// of the last front page seen. Stories already in the store are left
// untouched. Restored comments count as cached. The ranking is only used
// until the first front-page load succeeds.
func (s *Store) Restore(stories []model.Story, ranking []string) {
	s.mu.Lock()
	for _, st := range stories {
		if st.ID == "" {
			continue
		}
		if _, ok := s.stories[st.ID]; ok {
			continue
		}
		restored := st.Clone()
		restored.Status = model.Unfetched
		if len(restored.Comments) > 0 {
			restored.Status = model.Fetched
		}
		restored.LastErr = nil
		restored.Version = 1
		s.insertLocked(&restored)
		s.emit(Event{Kind: StoryAdded, StoryID: restored.ID, Version: restored.Version})
	}
	if s.ranking == nil {
		s.ranking = make([]string, 0, len(ranking))
		for _, id := range ranking {
			if _, ok := s.stories[id]; ok {
				s.ranking = append(s.ranking, id)
			}
		}
	}
	s.mu.Unlock()
	s.flush()
}

// getOrCreateLocked must be called with s.mu held.
func (s *Store) getOrCreateLocked(id string) *model.Story {
	if st, ok := s.stories[id]; ok {
		return st
	}
	st := model.NewPlaceholder(id)
	st.Version = 1
	s.insertLocked(&st)
	s.emit(Event{Kind: StoryAdded, StoryID: id, Version: st.Version})
	return &st
}

func (s *Store) insertLocked(st *model.Story) {
	s.stories[st.ID] = st
	s.order = append(s.order, st.ID)
}
