package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const algoliaBaseURL = "https://hn.algolia.com/api/v1"

// Algolia reads the front page and comment trees from the Algolia HN API.
// Its item endpoint returns the whole comment tree in one response.
type Algolia struct {
	client  *Client
	baseURL string
	limit   int
}

// NewAlgolia creates an Algolia source. An empty baseURL uses the public API.
func NewAlgolia(client *Client, baseURL string, limit int) *Algolia {
	if baseURL == "" {
		baseURL = algoliaBaseURL
	}
	return &Algolia{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
	}
}

// FrontPage fetches the stories currently tagged front_page.
func (a *Algolia) FrontPage(ctx context.Context) ([]StoryRecord, error) {
	u := a.baseURL + "/search?tags=front_page"
	if a.limit > 0 {
		u += fmt.Sprintf("&hitsPerPage=%d", a.limit)
	}

	body, err := a.client.fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching front page: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("fetching front page: invalid JSON from %s", u)
	}

	hits := gjson.GetBytes(body, "hits").Array()
	stories := make([]StoryRecord, 0, len(hits))
	for _, hit := range hits {
		stories = append(stories, parseAlgoliaStory(hit))
	}
	return stories, nil
}

// Comments fetches the comment tree of a story.
func (a *Algolia) Comments(ctx context.Context, storyID string) ([]CommentRecord, error) {
	u := a.baseURL + "/items/" + url.PathEscape(storyID)

	body, err := a.client.fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", storyID, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("fetching comments for %s: invalid JSON from %s", storyID, u)
	}
	return parseAlgoliaChildren(gjson.GetBytes(body, "children")), nil
}

func parseAlgoliaStory(hit gjson.Result) StoryRecord {
	id := hit.Get("objectID").String()
	if id == "" {
		id = hit.Get("id").String()
	}
	return StoryRecord{
		ID:          id,
		Title:       hit.Get("title").String(),
		Author:      hit.Get("author").String(),
		URL:         hit.Get("url").String(),
		CreatedAt:   createdAt(hit),
		Points:      int(hit.Get("points").Int()),
		NumComments: int(hit.Get("num_comments").Int()),
	}
}

// parseAlgoliaChildren maps a children array. A missing or non-array value
// yields an empty slice.
func parseAlgoliaChildren(children gjson.Result) []CommentRecord {
	if !children.IsArray() {
		return []CommentRecord{}
	}
	arr := children.Array()
	out := make([]CommentRecord, 0, len(arr))
	for _, c := range arr {
		if !c.IsObject() {
			continue
		}
		out = append(out, parseAlgoliaComment(c))
	}
	return out
}

func parseAlgoliaComment(c gjson.Result) CommentRecord {
	text := c.Get("text").String()
	if text == "" {
		// Older dumps carry the body under "comment".
		text = c.Get("comment").String()
	}
	return CommentRecord{
		ID:        c.Get("id").String(),
		Author:    c.Get("author").String(),
		Text:      text,
		CreatedAt: createdAt(c),
		Children:  parseAlgoliaChildren(c.Get("children")),
	}
}

// createdAt prefers the unix created_at_i field and falls back to parsing the
// RFC 3339 created_at string.
func createdAt(r gjson.Result) int64 {
	if ts := r.Get("created_at_i"); ts.Exists() {
		return ts.Int()
	}
	if s := r.Get("created_at").String(); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}
