// Package model holds the Story and Comment entities owned by the store.
package model

import (
	"slices"
	"time"
)

// FetchStatus is the comment fetch state of a story.
type FetchStatus int

const (
	// Unfetched is the state of a story whose comments were never requested.
	Unfetched FetchStatus = iota
	Fetching
	Fetched
	// Failed means the last fetch returned an error. It can be retried.
	Failed
)

func (s FetchStatus) String() string {
	switch s {
	case Unfetched:
		return "unfetched"
	case Fetching:
		return "fetching"
	case Fetched:
		return "fetched"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Story is a top-level discussion item.
type Story struct {
	ID          string
	Title       string
	Author      string
	CreatedAt   time.Time
	URL         string
	Points      int
	NumComments int
	Comments    []Comment

	Status FetchStatus
	// FetchTime is the start of the last comments fetch. Zero if never fetched.
	FetchTime time.Time
	// LastErr is the error of the last failed fetch, nil otherwise.
	LastErr error
	// Version increases on every committed change to the story.
	Version uint64
}

// NewPlaceholder returns an empty story for an id that is not known yet.
func NewPlaceholder(id string) Story {
	return Story{ID: id, Comments: []Comment{}}
}

// IsFetching reports whether a comments fetch is outstanding.
func (s Story) IsFetching() bool {
	return s.Status == Fetching
}

// IsPlaceholder reports whether the story has no descriptive data yet.
func (s Story) IsPlaceholder() bool {
	return s.Title == "" && s.Author == "" && s.CreatedAt.IsZero()
}

// MergeFrom overwrites the descriptive fields of s with those of other.
// Identity, comments and fetch state are kept.
func (s *Story) MergeFrom(other Story) {
	s.Title = other.Title
	s.Author = other.Author
	s.CreatedAt = other.CreatedAt
	s.URL = other.URL
	s.Points = other.Points
	s.NumComments = other.NumComments
}

// Clone returns a copy that shares no mutable state with s.
func (s Story) Clone() Story {
	c := s
	c.Comments = slices.Clone(s.Comments)
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	return c
}
