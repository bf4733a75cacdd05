package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirebaseFrontPage(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/topstories.json": `[3, 1, 2]`,
		"/item/3.json":     `{"id":3,"type":"story","by":"a","title":"Three","score":5,"descendants":1,"time":30}`,
		"/item/1.json":     `{"id":1,"type":"story","by":"b","title":"One","url":"https://one.example","time":10}`,
		"/item/2.json":     `{"id":2,"type":"story","title":"Two"}`,
	})
	src := NewFirebase(NewClient(time.Second, 0), srv.URL, 2)

	stories, err := src.FrontPage(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "3", stories[0].ID)
	assert.Equal(t, "Three", stories[0].Title)
	assert.Equal(t, 1, stories[0].NumComments)
	assert.Equal(t, "1", stories[1].ID)
	assert.Equal(t, "https://one.example", stories[1].URL)
}

func TestFirebaseComments(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/item/100.json": `{"id":100,"type":"story","kids":[101,102,103]}`,
		"/item/101.json": `{"id":101,"type":"comment","by":"alice","text":"top","kids":[104]}`,
		"/item/102.json": `{"id":102,"type":"comment","deleted":true}`,
		"/item/103.json": `null`,
		"/item/104.json": `{"id":104,"type":"comment","by":"bob","text":"reply","dead":true}`,
	})
	src := NewFirebase(NewClient(time.Second, 0), srv.URL, 0)

	comments, err := src.Comments(context.Background(), "100")
	require.NoError(t, err)

	// 103 answers null and is skipped.
	require.Len(t, comments, 2)
	assert.Equal(t, "101", comments[0].ID)
	assert.Equal(t, "alice", comments[0].Author)
	require.Len(t, comments[0].Children, 1)

	dead := comments[0].Children[0]
	assert.Equal(t, "104", dead.ID)
	assert.Empty(t, dead.Author)
	assert.Empty(t, dead.Text)

	assert.Equal(t, "102", comments[1].ID)
	assert.Empty(t, comments[1].Author)
	assert.NotNil(t, comments[1].Children)
}

func TestFirebaseCommentsBadID(t *testing.T) {
	src := NewFirebase(NewClient(time.Second, 0), "http://127.0.0.1:0", 0)

	_, err := src.Comments(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBatchGetItemsPreservesOrder(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/item/1.json": `{"id":1}`,
		"/item/2.json": `{"id":2}`,
		"/item/3.json": `{"id":3}`,
	})
	src := NewFirebase(NewClient(time.Second, 0), srv.URL, 0)

	items, err := src.BatchGetItems(context.Background(), []int{3, 9, 1, 2})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, 3, items[0].ID)
	assert.Nil(t, items[1])
	assert.Equal(t, 1, items[2].ID)
	assert.Equal(t, 2, items[3].ID)
}

// failingRoutes serves routes like newTestServer but answers 500 for the
// failing paths.
func failingRoutes(t *testing.T, routes map[string]string, failing ...string) string {
	t.Helper()
	fail := make(map[string]bool, len(failing))
	for _, p := range failing {
		fail[p] = true
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail[r.URL.Path] {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestFirebaseCommentsFailsOnBrokenKid(t *testing.T) {
	url := failingRoutes(t, map[string]string{
		"/item/1.json": `{"id":1,"type":"story","kids":[2,3]}`,
		"/item/2.json": `{"id":2,"type":"comment","by":"alice","text":"fine"}`,
	}, "/item/3.json")
	src := NewFirebase(NewClient(time.Second, 0), url, 0)

	comments, err := src.Comments(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, comments)
}

func TestFirebaseCommentsFailsOnBrokenGrandchild(t *testing.T) {
	url := failingRoutes(t, map[string]string{
		"/item/1.json": `{"id":1,"type":"story","kids":[2]}`,
		"/item/2.json": `{"id":2,"type":"comment","by":"alice","text":"fine","kids":[4]}`,
	}, "/item/4.json")
	src := NewFirebase(NewClient(time.Second, 0), url, 0)

	_, err := src.Comments(context.Background(), "1")
	require.Error(t, err)
}

func TestFirebaseFrontPageToleratesSomeFailures(t *testing.T) {
	url := failingRoutes(t, map[string]string{
		"/topstories.json": `[1, 2]`,
		"/item/1.json":     `{"id":1,"type":"story","title":"One"}`,
	}, "/item/2.json")
	src := NewFirebase(NewClient(time.Second, 0), url, 0)

	stories, err := src.FrontPage(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "1", stories[0].ID)
}

func TestFirebaseFrontPageFailsWhenEveryItemFails(t *testing.T) {
	url := failingRoutes(t, map[string]string{
		"/topstories.json": `[1, 2]`,
	}, "/item/1.json", "/item/2.json")
	src := NewFirebase(NewClient(time.Second, 0), url, 0)

	stories, err := src.FrontPage(context.Background())
	require.Error(t, err)
	assert.Nil(t, stories)
}

func TestBatchGetItemsReportsFailures(t *testing.T) {
	url := failingRoutes(t, map[string]string{
		"/item/1.json": `{"id":1}`,
		"/item/2.json": `null`,
	}, "/item/3.json")
	src := NewFirebase(NewClient(time.Second, 0), url, 0)

	items, err := src.BatchGetItems(context.Background(), []int{1, 2, 3})
	require.Error(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].ID)
	assert.Nil(t, items[1])
	assert.Nil(t, items[2])
}
