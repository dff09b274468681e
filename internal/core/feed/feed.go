// Package feed describes ordered, paginated post listings.
package feed

import (
	"yatube/internal/core/group"
	"yatube/internal/core/pagination"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

// PageSize is the number of posts on every feed page.
const PageSize = 3

type ScopeKind int

const (
	Global ScopeKind = iota
	Group
	Author
	Followed
)

// Scope selects which posts a feed contains.
type Scope struct {
	Kind     ScopeKind
	Slug     string
	Username string
}

func GlobalScope() Scope                { return Scope{Kind: Global} }
func GroupScope(slug string) Scope      { return Scope{Kind: Group, Slug: slug} }
func AuthorScope(username string) Scope { return Scope{Kind: Author, Username: username} }
func FollowedScope() Scope              { return Scope{Kind: Followed} }

// Feed is one rendered page of a scope. Group and Author are the resolved
// anchors for the Group and Author scopes. Following reports whether the
// viewer follows that anchor.
type Feed struct {
	Scope     Scope
	Page      pagination.Page[*post.Post]
	Group     *group.Group
	Author    *user.User
	Following bool
}
