package followerapp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/apperror"
	followerEntity "yatube/internal/core/follower"
	userEntity "yatube/internal/core/user"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	userPort "yatube/internal/ports/user"
)

// ErrNotFollowing is returned by Unfollow when there is no edge to remove.
var ErrNotFollowing = fmt.Errorf("not following: %w", apperror.ErrNotFound)

// FollowerService is the follow registry.
type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	GroupRepository    groupPort.GroupRepository
}

func NewFollowerService(
	repo followerPort.FollowerRepository,
	userRepo userPort.UserRepository,
	groupRepo groupPort.GroupRepository,
) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		GroupRepository:    groupRepo,
	}
}

// Follow creates the edge. Following twice is a no-op.
func (s *FollowerService) Follow(ctx context.Context, viewer *userEntity.User, t followerEntity.Target) error {
	if viewer == nil {
		return apperror.ErrForbidden
	}
	if t.Kind == followerEntity.AuthorKind && t.ID == viewer.ID {
		config.Logger.Warn("⚠️ Cannot follow yourself", zap.String("username", viewer.Username))
		return apperror.NewValidationError("author", "You cannot follow yourself.")
	}
	if err := s.FollowerRepository.Follow(ctx, followerEntity.New(viewer.ID, t)); err != nil {
		return fmt.Errorf("follow %s: %w", t.Kind, err)
	}
	return nil
}

// Unfollow removes the edge. A missing edge is ErrNotFollowing.
func (s *FollowerService) Unfollow(ctx context.Context, viewer *userEntity.User, t followerEntity.Target) error {
	if viewer == nil {
		return apperror.ErrForbidden
	}
	removed, err := s.FollowerRepository.Unfollow(ctx, viewer.ID, t)
	if err != nil {
		return fmt.Errorf("unfollow %s: %w", t.Kind, err)
	}
	if !removed {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing is always false for an anonymous viewer.
func (s *FollowerService) IsFollowing(ctx context.Context, viewer *userEntity.User, t followerEntity.Target) (bool, error) {
	if viewer == nil {
		return false, nil
	}
	return s.FollowerRepository.IsFollowing(ctx, viewer.ID, t)
}

func (s *FollowerService) CountFollowers(ctx context.Context, t followerEntity.Target) (int, error) {
	return s.FollowerRepository.CountFollowers(ctx, t)
}

func (s *FollowerService) FollowAuthor(ctx context.Context, viewer *userEntity.User, username string) error {
	t, err := s.authorTarget(ctx, username)
	if err != nil {
		return err
	}
	return s.Follow(ctx, viewer, t)
}

func (s *FollowerService) UnfollowAuthor(ctx context.Context, viewer *userEntity.User, username string) error {
	t, err := s.authorTarget(ctx, username)
	if err != nil {
		return err
	}
	return s.Unfollow(ctx, viewer, t)
}

func (s *FollowerService) FollowGroup(ctx context.Context, viewer *userEntity.User, slug string) error {
	t, err := s.groupTarget(ctx, slug)
	if err != nil {
		return err
	}
	return s.Follow(ctx, viewer, t)
}

func (s *FollowerService) UnfollowGroup(ctx context.Context, viewer *userEntity.User, slug string) error {
	t, err := s.groupTarget(ctx, slug)
	if err != nil {
		return err
	}
	return s.Unfollow(ctx, viewer, t)
}

func (s *FollowerService) authorTarget(ctx context.Context, username string) (followerEntity.Target, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return followerEntity.Target{}, err
	}
	return followerEntity.AuthorTarget(author.ID), nil
}

func (s *FollowerService) groupTarget(ctx context.Context, slug string) (followerEntity.Target, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return followerEntity.Target{}, err
	}
	return followerEntity.GroupTarget(g.ID), nil
}
