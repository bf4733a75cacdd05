package messages

import "github.com/fragmede/frontpage/internal/store"

// View transition messages.
type (
	OpenStoryMsg struct{ StoryID string }
	GoBackMsg    struct{}
)

// Data messages.
type (
	// StoreEventMsg carries a committed store mutation into the program.
	StoreEventMsg struct {
		Event store.Event
	}

	// FrontPageResultMsg reports the end of a user-triggered reload.
	FrontPageResultMsg struct {
		Err error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}

	// OpenURLMsg asks the app to open a link in the system browser.
	OpenURLMsg struct {
		URL string
	}
)
