package model

import "time"

// Comment is a reply under a story or another comment. Comments are never
// modified after they are created.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Children  []Comment `json:"children"`
}

// Visible reports whether the comment should be rendered. Comments without an
// author are deleted placeholders; they stay in the tree but are not shown.
func (c Comment) Visible() bool {
	return c.Author != ""
}

// Walk calls fn for c and every descendant, depth first, in order.
// Returning false from fn skips the children of that comment.
func (c Comment) Walk(depth int, fn func(c Comment, depth int) bool) {
	if !fn(c, depth) {
		return
	}
	for _, child := range c.Children {
		child.Walk(depth+1, fn)
	}
}

// CountVisible returns the number of visible comments in a forest, including
// nested replies under visible comments.
func CountVisible(comments []Comment) int {
	n := 0
	for _, c := range comments {
		c.Walk(0, func(c Comment, _ int) bool {
			if !c.Visible() {
				return false
			}
			n++
			return true
		})
	}
	return n
}
