package storyview

import "github.com/fragmede/frontpage/internal/model"

// CollapseState tracks collapsed comment IDs.
type CollapseState map[string]bool

// FlattenTree converts a nested comment tree into a flat list for display.
// Comments that are not visible are dropped together with their replies.
func FlattenTree(comments []model.Comment, opUser string, cs CollapseState) []FlatComment {
	var result []FlatComment

	var walk func(c model.Comment, depth, parent int)
	walk = func(c model.Comment, depth, parent int) {
		if !c.Visible() {
			return
		}
		idx := len(result)
		result = append(result, FlatComment{
			Comment:     c,
			Depth:       depth,
			Parent:      parent,
			IsCollapsed: cs[c.ID],
			ChildCount:  model.CountVisible(c.Children),
			IsOP:        opUser != "" && c.Author == opUser,
		})
		if cs[c.ID] {
			return
		}
		for _, child := range c.Children {
			walk(child, depth+1, idx)
		}
	}

	for _, c := range comments {
		walk(c, 0, -1)
	}
	return result
}

// FindParentIndex returns the index of the parent comment in the flat list.
func FindParentIndex(comments []FlatComment, currentIdx int) int {
	if currentIdx < 0 || currentIdx >= len(comments) {
		return -1
	}
	return comments[currentIdx].Parent
}

// FindNextSiblingIndex returns the index of the next comment at the same depth.
func FindNextSiblingIndex(comments []FlatComment, currentIdx int) int {
	if currentIdx < 0 || currentIdx >= len(comments) {
		return -1
	}
	depth := comments[currentIdx].Depth
	for i := currentIdx + 1; i < len(comments); i++ {
		if comments[i].Depth < depth {
			return -1 // Went up in tree, no more siblings.
		}
		if comments[i].Depth == depth {
			return i
		}
	}
	return -1
}
