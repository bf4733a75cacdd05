package ui

import (
	"os/exec"
	"runtime"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/fragmede/frontpage/internal/store"
	"github.com/fragmede/frontpage/internal/ui/keys"
	"github.com/fragmede/frontpage/internal/ui/messages"
	"github.com/fragmede/frontpage/internal/ui/statusbar"
	"github.com/fragmede/frontpage/internal/ui/storylist"
	"github.com/fragmede/frontpage/internal/ui/storyview"
)

// ViewType identifies the active view.
type ViewType int

const (
	ViewStoryList ViewType = iota
	ViewStoryDetail
)

// Store is everything the views need from the story store.
type Store interface {
	storylist.Store
	storyview.Store
	InFlight() int
	FrontPageErr() error
}

var _ Store = (*store.Store)(nil)

// App is the root Bubble Tea model.
type App struct {
	activeView    ViewType
	previousViews []ViewType

	storyList storylist.Model
	storyView storyview.Model
	statusBar statusbar.Model

	store Store
	log   logrus.FieldLogger

	width  int
	height int
}

// NewApp creates the root application model.
func NewApp(s Store, log logrus.FieldLogger) *App {
	a := &App{
		activeView: ViewStoryList,
		storyList:  storylist.New(s),
		statusBar:  statusbar.New(),
		store:      s,
		log:        log,
	}
	a.syncStatus()
	return a
}

// Init starts the application.
func (a *App) Init() tea.Cmd {
	return a.storyList.Init()
}

// ActiveView returns the view currently shown.
func (a *App) ActiveView() ViewType {
	return a.activeView
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.storyList.SetSize(msg.Width, contentHeight)
		a.statusBar.SetSize(msg.Width)
		if a.activeView == ViewStoryDetail {
			a.storyView.SetSize(msg.Width, contentHeight)
		}
		return a, nil

	case tea.KeyMsg:
		if a.activeView == ViewStoryList && a.storyList.Filtering() {
			break
		}
		switch {
		case msg.String() == "ctrl+c":
			return a, tea.Quit
		case key.Matches(msg, keys.Keys.Quit):
			if a.activeView == ViewStoryList {
				return a, tea.Quit
			}
			return a, a.goBack()
		case key.Matches(msg, keys.Keys.Back):
			if a.activeView != ViewStoryList {
				return a, a.goBack()
			}
		}

	case messages.OpenStoryMsg:
		a.openStory(msg.StoryID)
		return a, nil

	case messages.GoBackMsg:
		return a, a.goBack()

	case messages.StoreEventMsg:
		// Both views follow the store, whichever is active.
		a.syncStatus()
		var cmd tea.Cmd
		a.storyList, cmd = a.storyList.Update(msg)
		cmds = append(cmds, cmd)
		if a.activeView == ViewStoryDetail {
			a.storyView, cmd = a.storyView.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case messages.FrontPageResultMsg:
		a.syncStatus()
		if msg.Err != nil {
			a.statusBar.SetStatus("refresh failed", true)
		} else {
			a.statusBar.SetStatus("", false)
		}
		var cmd tea.Cmd
		a.storyList, cmd = a.storyList.Update(msg)
		return a, cmd

	case messages.OpenURLMsg:
		a.statusBar.SetStatus("Opening: "+msg.URL, false)
		return a, openBrowser(msg.URL)

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.activeView {
	case ViewStoryList:
		a.storyList, cmd = a.storyList.Update(msg)
		cmds = append(cmds, cmd)
	case ViewStoryDetail:
		a.storyView, cmd = a.storyView.Update(msg)
		cmds = append(cmds, cmd)
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewStoryList:
		content = a.storyList.View()
	case ViewStoryDetail:
		content = a.storyView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

// openStory shows the story view and queues exactly one navigation intent
// for it. The store resolves the intent off the UI goroutine.
func (a *App) openStory(id string) {
	a.log.WithField("story", id).Debug("open story")
	a.pushView(ViewStoryDetail)
	a.storyView = storyview.New(id, a.store)
	a.storyView.SetSize(a.width, a.height-1)
	a.statusBar.SetLocation("story " + id)
	a.store.Navigate(id)
}

func (a *App) pushView(v ViewType) {
	a.previousViews = append(a.previousViews, a.activeView)
	a.activeView = v
}

func (a *App) goBack() tea.Cmd {
	if len(a.previousViews) > 0 {
		a.activeView = a.previousViews[len(a.previousViews)-1]
		a.previousViews = a.previousViews[:len(a.previousViews)-1]
	}
	if a.activeView == ViewStoryList {
		a.statusBar.SetLocation("front page")
	}
	return nil
}

func (a *App) syncStatus() {
	a.statusBar.SetInFlight(a.store.InFlight())
	a.statusBar.SetOffline(a.store.FrontPageErr() != nil)
}

func openBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		default:
			return messages.StatusMsg{Text: "Cannot open links on " + runtime.GOOS, IsError: true}
		}
		if err := cmd.Run(); err != nil {
			return messages.StatusMsg{Text: "Open failed: " + err.Error(), IsError: true}
		}
		return nil
	}
}
