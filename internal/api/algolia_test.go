package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAlgoliaFrontPage(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/search": `{"hits":[
			{"objectID":"1","title":"A","author":"pg","url":"https://a.example","points":10,"num_comments":2,"created_at_i":1700000000},
			{"objectID":"2","title":"Ask HN: B","created_at":"2023-11-14T22:13:20.000Z"}
		]}`,
	})
	src := NewAlgolia(NewClient(time.Second, 0), srv.URL, 30)

	stories, err := src.FrontPage(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 2)

	assert.Equal(t, StoryRecord{
		ID: "1", Title: "A", Author: "pg", URL: "https://a.example",
		CreatedAt: 1700000000, Points: 10, NumComments: 2,
	}, stories[0])

	// Missing optional fields default to zero values.
	assert.Equal(t, "2", stories[1].ID)
	assert.Equal(t, "", stories[1].Author)
	assert.Equal(t, "", stories[1].URL)
	assert.Equal(t, int64(1700000000), stories[1].CreatedAt)
}

func TestAlgoliaComments(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/items/42": `{"id":42,"children":[
			{"id":5010,"author":"hal","text":"first","created_at_i":1},
			{"id":5011,"author":"9000","comment":"legacy body","children":[
				{"id":5040,"author":"Alice","text":"<p>nested</p>"},
				{"id":5041,"author":null,"text":null,"children":null}
			]},
			"garbage",
			{"id":5012,"author":"hal","text":"third"}
		]}`,
	})
	src := NewAlgolia(NewClient(time.Second, 0), srv.URL, 0)

	comments, err := src.Comments(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, comments, 3)

	assert.Equal(t, []string{"5010", "5011", "5012"}, []string{comments[0].ID, comments[1].ID, comments[2].ID})
	assert.Equal(t, "legacy body", comments[1].Text)
	require.Len(t, comments[1].Children, 2)
	assert.Equal(t, "<p>nested</p>", comments[1].Children[0].Text)

	deleted := comments[1].Children[1]
	assert.Empty(t, deleted.Author)
	assert.NotNil(t, deleted.Children)
	assert.Empty(t, deleted.Children)
	assert.NotNil(t, comments[0].Children)
}

func TestAlgoliaCommentsNotFound(t *testing.T) {
	srv := newTestServer(t, map[string]string{})
	src := NewAlgolia(NewClient(time.Second, 0), srv.URL, 0)

	_, err := src.Comments(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAlgoliaInvalidJSON(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/search": `{"hits":[`})
	src := NewAlgolia(NewClient(time.Second, 0), srv.URL, 0)

	_, err := src.FrontPage(context.Background())
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	client := NewClient(time.Second, 0)

	src, err := NewSource(client, SourceOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Algolia{}, src)

	src, err = NewSource(client, SourceOptions{Name: "Firebase"})
	require.NoError(t, err)
	assert.IsType(t, &Firebase{}, src)

	_, err = NewSource(client, SourceOptions{Name: "graphql"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}
