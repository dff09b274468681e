package group

import (
	"context"

	"yatube/internal/core/group"
)

// GroupRepository stores and loads groups.
type GroupRepository interface {
	Create(ctx context.Context, g *group.Group) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	ListModerated(ctx context.Context) ([]*group.Group, error)
	List(ctx context.Context) ([]*group.Group, error)
}

type GroupInput struct {
	Title       string `form:"title" validate:"required,max=70"`
	Slug        string `form:"slug" validate:"required,max=30,slug"`
	Description string `form:"description" validate:"max=500"`
}
