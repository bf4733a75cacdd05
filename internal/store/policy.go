package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/fragmede/frontpage/internal/api"
	"github.com/fragmede/frontpage/internal/model"
)

// FreshnessPolicy decides whether cached comments are too old to serve.
// When Stale returns true, RequestStoryComments refetches and replaces the
// cached comments instead of returning a cache hit.
type FreshnessPolicy interface {
	Stale(s model.Story, now time.Time) bool
}

// NoExpiry never considers cached comments stale.
type NoExpiry struct{}

func (NoExpiry) Stale(model.Story, time.Time) bool { return false }

// DuplicatePolicy resolves records that share an id within one front-page
// response.
type DuplicatePolicy int

const (
	// LastWriteWins keeps the fields of the last record for an id.
	LastWriteWins DuplicatePolicy = iota
	// FirstWriteWins keeps the first record for an id and drops the rest.
	FirstWriteWins
)

func (p DuplicatePolicy) String() string {
	if p == FirstWriteWins {
		return "first"
	}
	return "last"
}

// ParseDuplicatePolicy parses "last" or "first".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return LastWriteWins, nil
	case "first":
		return FirstWriteWins, nil
	default:
		return LastWriteWins, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// dedupe collapses records with the same id. The surviving record takes the
// position of the first occurrence. Records without an id are dropped.
func dedupe(recs []api.StoryRecord, p DuplicatePolicy) []api.StoryRecord {
	out := make([]api.StoryRecord, 0, len(recs))
	index := make(map[string]int, len(recs))
	for _, r := range recs {
		if r.ID == "" {
			continue
		}
		i, seen := index[r.ID]
		switch {
		case !seen:
			index[r.ID] = len(out)
			out = append(out, r)
		case p == LastWriteWins:
			out[i] = r
		}
	}
	return out
}
