package comment

import (
	"context"

	"github.com/gofrs/uuid"

	"yatube/internal/core/comment"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentInput struct {
	Text string `form:"text" validate:"required,max=1000"`
}
