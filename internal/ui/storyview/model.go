package storyview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/frontpage/internal/model"
	"github.com/fragmede/frontpage/internal/render"
	"github.com/fragmede/frontpage/internal/ui/keys"
	"github.com/fragmede/frontpage/internal/ui/messages"
	"github.com/fragmede/frontpage/internal/ui/theme"
)

const (
	scrollStep = 3
	maxIndent  = 30
)

// Store is the part of the story store the view reads and drives.
type Store interface {
	GetStory(id string) (model.Story, bool)
	Navigate(id string)
}

// Body is what the comment area currently shows.
type Body int

const (
	BodyLoading Body = iota
	BodyFailed
	BodyEmpty
	BodyComments
)

// BodyFor decides what to show for a story snapshot. Cached comments are
// shown even while a refresh is in flight.
func BodyFor(st model.Story, found bool) Body {
	switch {
	case !found:
		return BodyLoading
	case model.CountVisible(st.Comments) > 0:
		return BodyComments
	case st.Status == model.Failed:
		return BodyFailed
	case st.Status == model.Fetched:
		return BodyEmpty
	default:
		return BodyLoading
	}
}

type commentOffset struct {
	startLine int
	endLine   int
}

// Model is the story detail / comment tree view.
type Model struct {
	viewport    viewport.Model
	id          string
	story       model.Story
	found       bool
	comments    []FlatComment
	offsets     []commentOffset
	selectedIdx int
	collapse    CollapseState
	store       Store
	width       int
	height      int
}

// New creates a view for the story with the given id. The caller is
// responsible for requesting its comments.
func New(id string, s Store) Model {
	m := Model{
		viewport: viewport.New(0, 0),
		id:       id,
		collapse: make(CollapseState),
		store:    s,
	}
	m.reload()
	return m
}

// ID returns the id of the story shown.
func (m Model) ID() string {
	return m.id
}

// Body returns what the comment area currently shows.
func (m Model) Body() Body {
	return BodyFor(m.story, m.found)
}

// Comments returns the flattened comments currently shown.
func (m Model) Comments() []FlatComment {
	return m.comments
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.resizeViewport()
	m.rebuildContent()
}

func (m *Model) resizeViewport() {
	header := m.renderHeader()
	headerLines := strings.Count(header, "\n") + 1
	m.viewport.Height = max(m.height-headerLines, 1)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.StoreEventMsg:
		if msg.Event.StoryID == m.id {
			m.reload()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Keys.Down):
			if m.selectedIdx >= 0 && m.selectedIdx < len(m.offsets) {
				off := m.offsets[m.selectedIdx]
				if off.endLine >= m.viewport.YOffset+m.viewport.Height {
					// Long comment: scroll within it first.
					m.viewport.SetYOffset(m.viewport.YOffset + scrollStep)
					return m, nil
				}
			}
			if m.selectedIdx < len(m.comments)-1 {
				m.selectedIdx++
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, keys.Keys.Up):
			if m.selectedIdx >= 0 && m.selectedIdx < len(m.offsets) {
				off := m.offsets[m.selectedIdx]
				if off.startLine < m.viewport.YOffset {
					m.viewport.SetYOffset(max(m.viewport.YOffset-scrollStep, off.startLine))
					return m, nil
				}
			}
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, keys.Keys.Collapse):
			if m.selectedIdx >= 0 && m.selectedIdx < len(m.comments) {
				id := m.comments[m.selectedIdx].Comment.ID
				m.collapse[id] = !m.collapse[id]
				m.rebuildComments()
				m.rebuildContent()
			}
			return m, nil
		case key.Matches(msg, keys.Keys.FoldAll):
			m.toggleFoldAll()
			return m, nil
		case key.Matches(msg, keys.Keys.Parent):
			if idx := FindParentIndex(m.comments, m.selectedIdx); idx >= 0 {
				m.selectedIdx = idx
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, keys.Keys.NextSib):
			if idx := FindNextSiblingIndex(m.comments, m.selectedIdx); idx >= 0 {
				m.selectedIdx = idx
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, keys.Keys.Home):
			m.selectedIdx = 0
			m.rebuildContent()
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, keys.Keys.End):
			if len(m.comments) > 0 {
				m.selectedIdx = len(m.comments) - 1
				m.rebuildContent()
				m.viewport.GotoBottom()
			}
			return m, nil
		case key.Matches(msg, keys.Keys.Refresh):
			// Only a story without cached comments is refetched; the store
			// ignores the request otherwise.
			if b := m.Body(); b == BodyFailed || b == BodyEmpty {
				m.store.Navigate(m.id)
			}
			return m, nil
		case key.Matches(msg, keys.Keys.OpenURL):
			if m.story.URL != "" {
				u := m.story.URL
				return m, func() tea.Msg { return messages.OpenURLMsg{URL: u} }
			}
			return m, nil
		case key.Matches(msg, keys.Keys.PageDown):
			m.viewport.HalfViewDown()
			return m, nil
		case key.Matches(msg, keys.Keys.PageUp):
			m.viewport.HalfViewUp()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the story view.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View())
}

func (m *Model) reload() {
	m.story, m.found = m.store.GetStory(m.id)
	m.resizeViewport()
	m.rebuildComments()
	m.rebuildContent()
}

func (m *Model) toggleFoldAll() {
	// Collapse everything if anything with replies is expanded, else expand.
	anyExpanded := false
	for _, fc := range m.comments {
		if fc.ChildCount > 0 && !m.collapse[fc.Comment.ID] {
			anyExpanded = true
			break
		}
	}
	for _, fc := range m.comments {
		if fc.ChildCount > 0 {
			m.collapse[fc.Comment.ID] = anyExpanded
		}
	}
	m.rebuildComments()
	m.rebuildContent()
	if anyExpanded {
		m.viewport.GotoTop()
		m.selectedIdx = 0
	}
}

func (m *Model) rebuildComments() {
	m.comments = FlattenTree(m.story.Comments, m.story.Author, m.collapse)
	if m.selectedIdx >= len(m.comments) {
		m.selectedIdx = len(m.comments) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func (m *Model) rebuildContent() {
	switch m.Body() {
	case BodyLoading:
		m.offsets = nil
		m.viewport.SetContent("  Loading...")
		return
	case BodyFailed:
		m.offsets = nil
		m.viewport.SetContent(theme.ErrorStyle.Render(fmt.Sprintf(
			"  Could not load comments: %v", m.story.LastErr)) +
			"\n\n  " + theme.DimStyle.Render("Press r to try again."))
		return
	case BodyEmpty:
		m.offsets = nil
		m.viewport.SetContent("  No comments yet.")
		return
	}

	var sb strings.Builder
	m.offsets = make([]commentOffset, len(m.comments))
	availWidth := max(m.width-4, 20)

	lineCount := 0
	for i, fc := range m.comments {
		startLine := lineCount
		indent := min(fc.Depth*2, maxIndent)
		indentStr := strings.Repeat(" ", indent)

		barColor := theme.DepthColors[fc.Depth%len(theme.DepthColors)]
		selected := i == m.selectedIdx
		if selected {
			barColor = theme.Orange
		}
		bar := lipgloss.NewStyle().Foreground(barColor).Render("│")

		header := theme.AuthorStyle.Render(fc.Comment.Author)
		if ago := render.TimeAgo(fc.Comment.CreatedAt); ago != "" {
			header += " " + theme.DimStyle.Render(ago)
		}
		if fc.IsOP {
			header += " " + theme.OPBadgeStyle.Render(" OP ")
		}
		if fc.IsCollapsed {
			header += " " + theme.DimStyle.Render(fmt.Sprintf("[+%d]", fc.ChildCount))
		}
		if fc.Depth > 15 {
			header += " " + theme.DimStyle.Render(fmt.Sprintf("[d:%d]", fc.Depth))
		}

		headerLine := indentStr + bar + " " + header
		if selected {
			headerLine = theme.SelectedLineStyle.Render(headerLine)
		}
		sb.WriteString(headerLine + "\n")
		lineCount++

		if !fc.IsCollapsed {
			body := render.ToText(fc.Comment.Text, max(availWidth-indent-4, 20))
			for _, line := range strings.Split(body, "\n") {
				bodyLine := indentStr + bar + " " + line
				if selected {
					bodyLine = theme.SelectedLineStyle.Render(bodyLine)
				}
				sb.WriteString(bodyLine + "\n")
				lineCount++
			}
		}
		sb.WriteString("\n")
		lineCount++

		m.offsets[i] = commentOffset{startLine: startLine, endLine: lineCount - 1}
	}

	m.viewport.SetContent(sb.String())
}

func (m *Model) scrollToCursor() {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.offsets) {
		return
	}
	off := m.offsets[m.selectedIdx]
	if off.startLine < m.viewport.YOffset || off.startLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(off.startLine)
	}
}

func (m Model) renderHeader() string {
	var parts []string

	if m.story.Title != "" {
		parts = append(parts, theme.HeaderStyle.Render(m.story.Title))
		meta := []string{fmt.Sprintf("%d points", m.story.Points)}
		if m.story.Author != "" {
			meta = append(meta, "by "+m.story.Author)
		}
		if ago := render.TimeAgo(m.story.CreatedAt); ago != "" {
			meta = append(meta, ago)
		}
		meta = append(meta, fmt.Sprintf("%d comments", m.story.NumComments))
		parts = append(parts, theme.HeaderMetaStyle.Render(strings.Join(meta, " | ")))
		if d := render.Domain(m.story.URL); d != "" {
			parts = append(parts, theme.HeaderMetaStyle.Render(d))
		}
	} else {
		parts = append(parts, theme.HeaderStyle.Render("Story "+m.id))
	}

	parts = append(parts, theme.SeparatorStyle.Render(strings.Repeat("─", max(m.width, 0))))
	parts = append(parts, theme.DimStyle.Render(keys.Hint(
		keys.Keys.Down, keys.Keys.Parent, keys.Keys.NextSib, keys.Keys.Collapse,
		keys.Keys.FoldAll, keys.Keys.OpenURL, keys.Keys.Back,
	)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
