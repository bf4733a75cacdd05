package storyview

import "github.com/fragmede/frontpage/internal/model"

// FlatComment is a comment flattened from the tree for display.
type FlatComment struct {
	Comment model.Comment
	Depth   int
	// Parent is the index of the parent comment in the flat list, -1 for
	// top-level comments.
	Parent      int
	IsCollapsed bool
	// ChildCount is the number of visible replies below the comment.
	ChildCount int
	IsOP       bool
}
