package post

import (
	"context"

	"github.com/gofrs/uuid"

	"yatube/internal/core/post"
	mediaPort "yatube/internal/ports/media"
)

// PostRepository stores, loads and pages posts.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByAuthorAndSlug(ctx context.Context, authorID uuid.UUID, slug string) (*post.Post, error)
	// UpdateContent writes only group, title, text and image.
	UpdateContent(ctx context.Context, p *post.Post) error
	// Delete removes the post with its comments.
	Delete(ctx context.Context, id uuid.UUID) error
	CountFeed(ctx context.Context, f FeedFilter) (int, error)
	ListFeed(ctx context.Context, f FeedFilter, offset, limit int) ([]*post.Post, error)
}

// FeedFilter narrows the moderated post set. Zero value means every post.
// FollowerID selects posts whose author or group that user follows.
type FeedFilter struct {
	GroupID    *uuid.UUID
	AuthorID   *uuid.UUID
	FollowerID *uuid.UUID
}

// PostInput is the create form.
type PostInput struct {
	Group string          `form:"group" validate:"max=30"`
	Title string          `form:"title" validate:"required,max=200"`
	Text  string          `form:"text" validate:"required,max=5000"`
	Slug  string          `form:"slug" validate:"required,max=30,slug"`
	Image *mediaPort.File `form:"-" validate:"-"`
}

// PostEditInput is the edit form. It has no slug: a post keeps its address.
type PostEditInput struct {
	Group string          `form:"group" validate:"max=30"`
	Title string          `form:"title" validate:"required,max=200"`
	Text  string          `form:"text" validate:"required,max=5000"`
	Image *mediaPort.File `form:"-" validate:"-"`
}
