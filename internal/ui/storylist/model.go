package storylist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/frontpage/internal/model"
	"github.com/fragmede/frontpage/internal/store"
	"github.com/fragmede/frontpage/internal/ui/keys"
	"github.com/fragmede/frontpage/internal/ui/messages"
)

const listTitle = "Hacker News"

// Store is the part of the story store the list reads and drives.
type Store interface {
	FrontPage() []model.Story
	LoadFrontPage(ctx context.Context) error
}

// Model is the front page view.
type Model struct {
	list    list.Model
	store   Store
	loading bool
	width   int
	height  int
}

// New creates a story list showing whatever s already holds.
func New(s Store) Model {
	l := list.New(nil, Delegate{}, 0, 0)
	l.Title = listTitle
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	m := Model{list: l, store: s}
	m.refresh()
	return m
}

// Init loads the front page.
func (m Model) Init() tea.Cmd {
	return m.loadFrontPage()
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.StoreEventMsg:
		switch msg.Event.Kind {
		case store.StoryAdded, store.StoryUpdated, store.FrontPageLoaded,
			store.FetchStarted, store.CommentsLoaded, store.FetchFailed:
			m.refresh()
		case store.FrontPageFailed:
			m.list.Title = listTitle + " (offline)"
		}
		return m, nil

	case messages.FrontPageResultMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Error: " + msg.Err.Error()
		} else {
			m.list.Title = listTitle
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.Keys.Enter):
			if item, ok := m.list.SelectedItem().(StoryItem); ok {
				id := item.Story.ID
				return m, func() tea.Msg { return messages.OpenStoryMsg{StoryID: id} }
			}
		case key.Matches(msg, keys.Keys.OpenURL):
			if item, ok := m.list.SelectedItem().(StoryItem); ok && item.Story.URL != "" {
				u := item.Story.URL
				return m, func() tea.Msg { return messages.OpenURLMsg{URL: u} }
			}
		case key.Matches(msg, keys.Keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.list.Title = listTitle + " (refreshing...)"
			cmd := m.loadFrontPage()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the story list.
func (m Model) View() string {
	return m.list.View()
}

// Filtering reports whether the filter prompt has keyboard focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Items returns the rows currently shown.
func (m Model) Items() []StoryItem {
	out := make([]StoryItem, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if si, ok := it.(StoryItem); ok {
			out = append(out, si)
		}
	}
	return out
}

// refresh rebuilds the rows from the latest front page ranking.
func (m *Model) refresh() {
	stories := m.store.FrontPage()
	items := make([]list.Item, 0, len(stories))
	for i, st := range stories {
		items = append(items, StoryItem{Story: st, Index: i})
	}
	m.list.SetItems(items)
}

func (m *Model) loadFrontPage() tea.Cmd {
	m.loading = true
	s := m.store
	return func() tea.Msg {
		return messages.FrontPageResultMsg{Err: s.LoadFrontPage(context.Background())}
	}
}
