package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSource is returned by NewSource for an unrecognised source name.
var ErrUnknownSource = errors.New("unknown source")

// Source is the remote story/comment data source.
type Source interface {
	// FrontPage returns the current front-page stories in ranking order.
	FrontPage(ctx context.Context) ([]StoryRecord, error)
	// Comments returns the top-level comments of a story, in the order the
	// remote API returns them, with replies nested under Children.
	Comments(ctx context.Context, storyID string) ([]CommentRecord, error)
}

// StoryRecord is a front-page story as returned by a Source.
type StoryRecord struct {
	ID          string
	Title       string
	Author      string
	URL         string
	CreatedAt   int64 // unix seconds
	Points      int
	NumComments int
}

// CommentRecord is a comment as returned by a Source. An empty Author marks a
// deleted or dead comment.
type CommentRecord struct {
	ID        string
	Author    string
	Text      string // raw HN HTML
	CreatedAt int64
	Children  []CommentRecord
}

// Source names accepted by NewSource.
const (
	SourceAlgolia  = "algolia"
	SourceFirebase = "firebase"
)

// SourceOptions configures NewSource.
type SourceOptions struct {
	Name          string
	AlgoliaURL    string
	FirebaseURL   string
	FrontPageSize int
}

// NewSource builds the named Source on top of client.
func NewSource(client *Client, opts SourceOptions) (Source, error) {
	switch strings.ToLower(opts.Name) {
	case "", SourceAlgolia:
		return NewAlgolia(client, opts.AlgoliaURL, opts.FrontPageSize), nil
	case SourceFirebase:
		return NewFirebase(client, opts.FirebaseURL, opts.FrontPageSize), nil
	default:
		return nil, fmt.Errorf("%q: %w", opts.Name, ErrUnknownSource)
	}
}
