package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/frontpage/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutAndLoadStories(t *testing.T) {
	db := openTestDB(t)
	created := time.Unix(1700000000, 0).UTC()

	require.NoError(t, db.PutStory(model.Story{ID: "2", Title: "Two", CreatedAt: created, Points: 4}))
	require.NoError(t, db.PutStory(model.Story{ID: "1", Title: "One", URL: "https://one.example"}))
	// Updating keeps the first position.
	require.NoError(t, db.PutStory(model.Story{ID: "2", Title: "Two again", Points: 9}))

	stories, err := db.LoadStories()
	require.NoError(t, err)
	require.Len(t, stories, 2)

	assert.Equal(t, "2", stories[0].ID)
	assert.Equal(t, "Two again", stories[0].Title)
	assert.Equal(t, 9, stories[0].Points)
	assert.True(t, stories[0].CreatedAt.IsZero())
	assert.Equal(t, "1", stories[1].ID)
	assert.Equal(t, "https://one.example", stories[1].URL)
	assert.NotNil(t, stories[1].Comments)
	assert.Empty(t, stories[1].Comments)
}

func TestPutComments(t *testing.T) {
	db := openTestDB(t)
	tree := []model.Comment{
		{ID: "a", Author: "hal", Text: "<p>hi</p>", CreatedAt: time.Unix(10, 0).UTC(), Children: []model.Comment{
			{ID: "b", Author: "alice", Children: []model.Comment{}},
			{ID: "b", Children: []model.Comment{}},
		}},
	}

	// Comments may arrive for a story the front page never listed.
	require.NoError(t, db.PutComments("77", tree))

	got, fetchedAt, err := db.GetComments("77")
	require.NoError(t, err)
	assert.False(t, fetchedAt.IsZero())
	assert.Equal(t, tree, got)

	stories, err := db.LoadStories()
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "77", stories[0].ID)
	assert.True(t, stories[0].IsPlaceholder())
	assert.Equal(t, tree, stories[0].Comments)
}

func TestGetCommentsMiss(t *testing.T) {
	db := openTestDB(t)

	got, fetchedAt, err := db.GetComments("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, fetchedAt.IsZero())
}

func TestPutCommentsReplaces(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.PutStory(model.Story{ID: "1", Title: "One"}))
	require.NoError(t, db.PutComments("1", []model.Comment{{ID: "a", Children: []model.Comment{}}}))
	require.NoError(t, db.PutComments("1", []model.Comment{{ID: "x", Children: []model.Comment{}}, {ID: "y", Children: []model.Comment{}}}))

	got, _, err := db.GetComments("1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ID)

	stories, err := db.LoadStories()
	require.NoError(t, err)
	assert.Equal(t, "One", stories[0].Title)
}

func TestRankingReplacesPreviousFrontPage(t *testing.T) {
	db := openTestDB(t)
	for _, id := range []string{"old1", "old2", "new1"} {
		require.NoError(t, db.PutStory(model.Story{ID: id, Title: id}))
	}

	ids, err := db.LoadRanking()
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, db.PutRanking([]string{"old1", "old2"}))
	require.NoError(t, db.PutRanking([]string{"new1", "old2"}))

	ids, err = db.LoadRanking()
	require.NoError(t, err)
	assert.Equal(t, []string{"new1", "old2"}, ids)
}

func TestRankingRejectsUnknownStory(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.PutStory(model.Story{ID: "1"}))
	require.NoError(t, db.PutRanking([]string{"1"}))

	require.Error(t, db.PutRanking([]string{"1", "missing"}))

	// The failed write leaves the previous ranking in place.
	ids, err := db.LoadRanking()
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids)
}
