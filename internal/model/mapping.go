package model

import (
	"time"

	"github.com/samber/lo"

	"github.com/fragmede/frontpage/internal/api"
)

// StoryFromRecord maps a remote story record into a Story. Fetch state is
// left at its zero value and comments start empty.
func StoryFromRecord(r api.StoryRecord) Story {
	return Story{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		CreatedAt:   unixTime(r.CreatedAt),
		URL:         r.URL,
		Points:      r.Points,
		NumComments: r.NumComments,
		Comments:    []Comment{},
	}
}

// CommentFromRecord maps a remote comment record and its replies.
func CommentFromRecord(r api.CommentRecord) Comment {
	return Comment{
		ID:        r.ID,
		Author:    r.Author,
		Text:      r.Text,
		CreatedAt: unixTime(r.CreatedAt),
		Children:  CommentsFromRecords(r.Children),
	}
}

// CommentsFromRecords maps records in order. The result is never nil.
func CommentsFromRecords(rs []api.CommentRecord) []Comment {
	if len(rs) == 0 {
		return []Comment{}
	}
	return lo.Map(rs, func(r api.CommentRecord, _ int) Comment {
		return CommentFromRecord(r)
	})
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
