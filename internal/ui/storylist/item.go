package storylist

import (
	"fmt"
	"strings"

	"github.com/fragmede/frontpage/internal/model"
	"github.com/fragmede/frontpage/internal/render"
)

// StoryItem wraps a story snapshot for the bubbles list.
type StoryItem struct {
	Story model.Story
	Index int
}

func (s StoryItem) Title() string {
	if s.Story.Title != "" {
		return s.Story.Title
	}
	return fmt.Sprintf("[story %s]", s.Story.ID)
}

func (s StoryItem) Description() string {
	parts := make([]string, 0, 4)

	if s.Story.Points > 0 {
		parts = append(parts, fmt.Sprintf("%d points", s.Story.Points))
	}
	if s.Story.Author != "" {
		parts = append(parts, "by "+s.Story.Author)
	}
	if ago := render.TimeAgo(s.Story.CreatedAt); ago != "" {
		parts = append(parts, ago)
	}
	if s.Story.NumComments > 0 {
		parts = append(parts, fmt.Sprintf("%d comments", s.Story.NumComments))
	}
	if s.Story.IsFetching() {
		parts = append(parts, "loading comments")
	}

	desc := strings.Join(parts, " | ")
	if d := render.Domain(s.Story.URL); d != "" {
		desc += "  (" + d + ")"
	}
	return desc
}

func (s StoryItem) FilterValue() string {
	return s.Story.Title + " " + s.Story.Author
}
