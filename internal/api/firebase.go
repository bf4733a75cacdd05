package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	firebaseBaseURL = "https://hacker-news.firebaseio.com/v0"
	// maxCommentDepth bounds the level-by-level walk of a comment tree.
	maxCommentDepth = 32
)

// Item is an item from the official HN Firebase API.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
	Parent      int    `json:"parent"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// Firebase reads the front page and comment trees from the HN Firebase API.
// Every item is a separate request, so trees are fetched one level at a time.
type Firebase struct {
	client  *Client
	baseURL string
	limit   int
}

// NewFirebase creates a Firebase source. An empty baseURL uses the public API.
func NewFirebase(client *Client, baseURL string, limit int) *Firebase {
	if baseURL == "" {
		baseURL = firebaseBaseURL
	}
	return &Firebase{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
	}
}

// GetItem fetches a single item by ID.
func (f *Firebase) GetItem(ctx context.Context, id int) (*Item, error) {
	url := fmt.Sprintf("%s/item/%d.json", f.baseURL, id)
	var item Item
	if err := f.client.get(ctx, url, &item); err != nil {
		return nil, err
	}
	// The API answers unknown ids with a JSON null.
	if item.ID == 0 {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// BatchGetItems fetches multiple items concurrently with a concurrency limit.
// Returns items in the same order as the input IDs. Missing items (unknown ids
// or a JSON null) are nil. Any other failure also leaves a nil slot and is
// reported in the joined error, alongside the items that did arrive.
func (f *Firebase) BatchGetItems(ctx context.Context, ids []int) ([]*Item, error) {
	results := make([]*Item, len(ids))
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, id := range ids {
		g.Go(func() error {
			item, err := f.GetItem(gctx, id)
			switch {
			case errors.Is(err, ErrNotFound):
			case err != nil:
				errs[i] = err
			default:
				results[i] = item
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, errors.Join(errs...)
}

// GetTopStoryIDs fetches the ranked list of front-page story IDs.
func (f *Firebase) GetTopStoryIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := f.client.get(ctx, f.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("fetching top stories: %w", err)
	}
	return ids, nil
}

// FrontPage fetches the top stories.
func (f *Firebase) FrontPage(ctx context.Context) ([]StoryRecord, error) {
	ids, err := f.GetTopStoryIDs(ctx)
	if err != nil {
		return nil, err
	}
	if f.limit > 0 && f.limit < len(ids) {
		ids = ids[:f.limit]
	}
	items, err := f.BatchGetItems(ctx, ids)

	stories := make([]StoryRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		stories = append(stories, item.storyRecord())
	}
	// A partial front page is still a front page; nothing at all is a failure.
	if err != nil && len(stories) == 0 {
		return nil, fmt.Errorf("fetching front page items: %w", err)
	}
	return stories, nil
}

// Comments fetches the comment tree below a story.
func (f *Firebase) Comments(ctx context.Context, storyID string) ([]CommentRecord, error) {
	id, err := strconv.Atoi(storyID)
	if err != nil {
		return nil, fmt.Errorf("story %q: %w", storyID, ErrNotFound)
	}
	story, err := f.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching story %s: %w", storyID, err)
	}

	fetched := make(map[int]*Item)
	level := story.Kids
	for depth := 0; len(level) > 0 && depth < maxCommentDepth; depth++ {
		// A partial tree would be cached as complete, so any failed comment
		// fails the whole thread.
		items, err := f.BatchGetItems(ctx, level)
		if err != nil {
			return nil, fmt.Errorf("fetching comments for %s: %w", storyID, err)
		}
		var next []int
		for _, item := range items {
			if item == nil {
				continue
			}
			fetched[item.ID] = item
			next = append(next, item.Kids...)
		}
		level = next
	}
	return buildCommentTree(story.Kids, fetched), nil
}

// buildCommentTree assembles records for ids in order. Items the API does not
// know are skipped.
func buildCommentTree(ids []int, fetched map[int]*Item) []CommentRecord {
	out := make([]CommentRecord, 0, len(ids))
	for _, id := range ids {
		item, ok := fetched[id]
		if !ok {
			continue
		}
		rec := item.commentRecord()
		rec.Children = buildCommentTree(item.Kids, fetched)
		out = append(out, rec)
	}
	return out
}

func (it *Item) storyRecord() StoryRecord {
	return StoryRecord{
		ID:          strconv.Itoa(it.ID),
		Title:       it.Title,
		Author:      it.By,
		URL:         it.URL,
		CreatedAt:   it.Time,
		Points:      it.Score,
		NumComments: it.Descendants,
	}
}

func (it *Item) commentRecord() CommentRecord {
	rec := CommentRecord{
		ID:        strconv.Itoa(it.ID),
		Author:    it.By,
		Text:      it.Text,
		CreatedAt: it.Time,
	}
	if it.Deleted || it.Dead {
		rec.Author = ""
		rec.Text = ""
	}
	return rec
}
