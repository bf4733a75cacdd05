package storylist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/frontpage/internal/model"
	"github.com/fragmede/frontpage/internal/ui/theme"
)

// FetchMarker is the one-cell comment state shown before each title.
type FetchMarker int

const (
	MarkerNone FetchMarker = iota
	MarkerCached
	MarkerLoading
	MarkerFailed
)

// MarkerFor picks the marker for a story. A running fetch wins over cached
// comments, and a failed refresh is flagged even when older comments remain.
func MarkerFor(st model.Story) FetchMarker {
	switch st.Status {
	case model.Fetching:
		return MarkerLoading
	case model.Failed:
		return MarkerFailed
	case model.Fetched:
		return MarkerCached
	default:
		return MarkerNone
	}
}

func (mk FetchMarker) String() string {
	switch mk {
	case MarkerCached:
		return "●"
	case MarkerLoading:
		return "…"
	case MarkerFailed:
		return "!"
	default:
		return " "
	}
}

func (mk FetchMarker) render() string {
	switch mk {
	case MarkerCached:
		return theme.CachedMarkerStyle.Render(mk.String())
	case MarkerLoading:
		return theme.LoadingMarkerStyle.Render(mk.String())
	case MarkerFailed:
		return theme.ErrorStyle.Render(mk.String())
	default:
		return mk.String()
	}
}

// Delegate draws a story as a title line and a meta line.
type Delegate struct{}

func (d Delegate) Height() int                             { return 2 }
func (d Delegate) Spacing() int                            { return 1 }
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d Delegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(StoryItem)
	if !ok {
		return
	}

	idx := theme.IndexStyle.Render(fmt.Sprintf("%d.", item.Index+1))
	marker := MarkerFor(item.Story).render()

	var title, desc string
	if index == m.Index() {
		title = theme.SelectedTitleStyle.Render(item.Title())
		desc = theme.SelectedMetaStyle.Render(item.Description())
	} else {
		title = theme.TitleStyle.Render(item.Title())
		desc = theme.MetaStyle.Render(item.Description())
	}

	fmt.Fprintf(w, "%s %s %s\n       %s", idx, marker, title, desc)
}
