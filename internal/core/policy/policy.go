// Package policy answers who may see and change posts and comments.
// A nil viewer is anonymous.
package policy

import (
	"yatube/internal/core/comment"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

// CanView reports whether viewer may open a post. Every post is public.
func CanView(viewer *user.User, p *post.Post) bool { return p != nil }

// CanViewGroup reports whether a group page is reachable. Moderation only
// affects listings, not direct access.
func CanViewGroup(g *group.Group) bool { return g != nil }

// Listed reports whether a group appears in the group list.
func Listed(g *group.Group) bool { return g != nil && g.Moderation }

// CanEdit is true only for the post's author. Usernames are unique, so
// comparing ids is the same as comparing usernames.
func CanEdit(viewer *user.User, p *post.Post) bool {
	if viewer == nil || p == nil {
		return false
	}
	return viewer.ID == p.AuthorID
}

func CanDeletePost(viewer *user.User, p *post.Post) bool { return CanEdit(viewer, p) }

func CanDeleteComment(viewer *user.User, c *comment.Comment) bool {
	if viewer == nil || c == nil {
		return false
	}
	return viewer.ID == c.AuthorID
}
