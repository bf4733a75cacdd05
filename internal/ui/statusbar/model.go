package statusbar

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/frontpage/internal/ui/theme"
)

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	location   string
	inFlight   int
	statusText string
	isError    bool
	offline    bool
}

// New creates a new status bar.
func New() Model {
	return Model{location: "front page"}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetLocation sets the label of the active view.
func (m *Model) SetLocation(loc string) {
	m.location = loc
}

// SetInFlight sets the number of outstanding comment fetches.
func (m *Model) SetInFlight(n int) {
	m.inFlight = n
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// SetOffline sets the offline indicator.
func (m *Model) SetOffline(offline bool) {
	m.offline = offline
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	left := theme.StatusBarBrand.Render("HN") + theme.StatusTextStyle.Render(m.location)

	var right string
	if m.statusText != "" {
		style := theme.StatusTextStyle
		if m.isError {
			style = style.Foreground(lipgloss.Color("#FF5F5F"))
		}
		right += style.Render(m.statusText)
	}
	if m.inFlight > 0 {
		right += theme.BusyStyle.Render(fmt.Sprintf("loading %d", m.inFlight))
	}
	if m.offline {
		right += theme.OfflineStyle.Render("OFFLINE")
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	mid := theme.StatusBarStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}
