package storylist

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/frontpage/internal/model"
	"github.com/fragmede/frontpage/internal/store"
	"github.com/fragmede/frontpage/internal/ui/messages"
)

type fakeStore struct {
	stories   []model.Story
	loadErr   error
	loadCalls int
}

func (f *fakeStore) FrontPage() []model.Story { return f.stories }

func (f *fakeStore) LoadFrontPage(ctx context.Context) error {
	f.loadCalls++
	return f.loadErr
}

func frontPage() []model.Story {
	return []model.Story{
		{ID: "1", Title: "First", Author: "hal", Points: 12, NumComments: 3, URL: "https://www.example.com/x"},
		{ID: "2", Title: "Second", Author: "alice"},
	}
}

func TestNewListsFrontPageInRankOrder(t *testing.T) {
	m := New(&fakeStore{stories: frontPage()})

	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Story.ID)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, "2", items[1].Story.ID)
	assert.Equal(t, 1, items[1].Index)
}

func TestRefreshOnStoreEvent(t *testing.T) {
	fs := &fakeStore{}
	m := New(fs)
	assert.Empty(t, m.Items())

	fs.stories = frontPage()
	m, _ = m.Update(messages.StoreEventMsg{Event: store.Event{Kind: store.FrontPageLoaded}})
	assert.Len(t, m.Items(), 2)
}

func TestEnterOpensStory(t *testing.T) {
	m := New(&fakeStore{stories: frontPage()})
	m.SetSize(80, 40)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.OpenStoryMsg{StoryID: "1"}, cmd())
}

func TestRefreshKeyReloadsFrontPage(t *testing.T) {
	fs := &fakeStore{loadErr: errors.New("offline")}
	m := New(fs)
	m.SetSize(80, 40)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)

	// A second press while the first is running is ignored.
	m, again := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, again)

	msg := cmd()
	assert.Equal(t, messages.FrontPageResultMsg{Err: fs.loadErr}, msg)
	assert.Equal(t, 1, fs.loadCalls)

	m, _ = m.Update(msg)
	assert.Contains(t, m.View(), "offline")
}

func TestStoryItemDescription(t *testing.T) {
	item := StoryItem{Story: model.Story{
		ID: "1", Title: "First", Author: "hal", Points: 12, NumComments: 3,
		CreatedAt: time.Now().Add(-3 * time.Hour),
		URL:       "https://www.example.com/x",
	}}

	assert.Equal(t, "First", item.Title())
	assert.Equal(t, "12 points | by hal | 3 hours ago | 3 comments  (example.com)", item.Description())
	assert.Equal(t, "First hal", item.FilterValue())
}

func TestStoryItemUntitled(t *testing.T) {
	item := StoryItem{Story: model.Story{ID: "8", Status: model.Fetching}}

	assert.Equal(t, "[story 8]", item.Title())
	assert.Equal(t, "loading comments", item.Description())
}

func TestMarkerFor(t *testing.T) {
	cached := []model.Comment{{ID: "c", Author: "x"}}
	tests := []struct {
		name  string
		story model.Story
		want  FetchMarker
	}{
		{"never opened", model.Story{ID: "1"}, MarkerNone},
		{"loading", model.Story{ID: "1", Status: model.Fetching}, MarkerLoading},
		{"refreshing cached", model.Story{ID: "1", Status: model.Fetching, Comments: cached}, MarkerLoading},
		{"cached", model.Story{ID: "1", Status: model.Fetched, Comments: cached}, MarkerCached},
		{"empty thread", model.Story{ID: "1", Status: model.Fetched, Comments: []model.Comment{}}, MarkerCached},
		{"failed", model.Story{ID: "1", Status: model.Failed, LastErr: errors.New("boom")}, MarkerFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkerFor(tt.story))
		})
	}
}

func TestViewShowsFetchMarkers(t *testing.T) {
	fs := &fakeStore{stories: []model.Story{
		{ID: "1", Title: "Read", Status: model.Fetched, Comments: []model.Comment{{ID: "c"}}},
		{ID: "2", Title: "Broken", Status: model.Failed},
		{ID: "3", Title: "Fresh"},
	}}
	m := New(fs)
	m.SetSize(80, 40)

	view := m.View()
	assert.Contains(t, view, MarkerCached.String())
	assert.Contains(t, view, MarkerFailed.String())
	assert.NotContains(t, view, MarkerLoading.String())

	fs.stories[2].Status = model.Fetching
	m, _ = m.Update(messages.StoreEventMsg{Event: store.Event{Kind: store.FetchStarted, StoryID: "3"}})
	assert.Contains(t, m.View(), MarkerLoading.String())
}
