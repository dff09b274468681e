package commentapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/apperror"
	commentEntity "yatube/internal/core/comment"
	"yatube/internal/core/policy"
	"yatube/internal/core/sanitize"
	userEntity "yatube/internal/core/user"
	"yatube/internal/core/validation"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	UserRepository    userPort.UserRepository
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		UserRepository:    userRepo,
	}
}

// Add comments on the post addressed by username and slug.
func (s *CommentService) Add(ctx context.Context, actor *userEntity.User, username, slug string, in commentPort.CommentInput) (*commentEntity.Comment, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.PostRepository.FindByAuthorAndSlug(ctx, author.ID, slug)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperror.ErrForbidden
	}

	in.Text = sanitize.Plain(strings.TrimSpace(in.Text))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		PostID:   p.ID,
		AuthorID: actor.ID,
		Text:     in.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	c.Author = *actor
	c.Post = *p
	return c, nil
}

// Delete removes the actor's own comment. The loaded comment is returned
// even when the actor may not delete it, so callers can redirect to its post.
func (s *CommentService) Delete(ctx context.Context, actor *userEntity.User, id string) (*commentEntity.Comment, error) {
	cid, err := uuid.FromString(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}
	c, err := s.CommentRepository.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !policy.CanDeleteComment(actor, c) {
		if actor != nil {
			config.Logger.Warn("⚠️ Ignored delete of foreign comment",
				zap.String("actor", actor.Username), zap.String("comment", id))
		}
		return c, apperror.ErrForbidden
	}
	if err := s.CommentRepository.Delete(ctx, c.ID); err != nil {
		return c, fmt.Errorf("delete comment: %w", err)
	}
	return c, nil
}

func (s *CommentService) ListForPost(ctx context.Context, postID uuid.UUID) ([]*commentEntity.Comment, error) {
	return s.CommentRepository.ListByPost(ctx, postID)
}
