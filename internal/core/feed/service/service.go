package feedapp

import (
	"context"
	"fmt"

	feedEntity "yatube/internal/core/feed"
	followerEntity "yatube/internal/core/follower"
	"yatube/internal/core/pagination"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// FollowChecker reports follow state for the anchor of a feed.
type FollowChecker interface {
	IsFollowing(ctx context.Context, viewer *userEntity.User, t followerEntity.Target) (bool, error)
}

// FeedService composes paginated post feeds.
type FeedService struct {
	PostRepository  postPort.PostRepository
	UserRepository  userPort.UserRepository
	GroupRepository groupPort.GroupRepository
	Follows         FollowChecker
}

func NewFeedService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	groupRepo groupPort.GroupRepository,
	follows FollowChecker,
) *FeedService {
	return &FeedService{
		PostRepository:  postRepo,
		UserRepository:  userRepo,
		GroupRepository: groupRepo,
		Follows:         follows,
	}
}

// Compose returns page of scope as seen by viewer (nil when anonymous),
// newest post first. An unknown group slug or username is
// apperror.ErrNotFound. The global scope never looks at viewer.
func (s *FeedService) Compose(ctx context.Context, scope feedEntity.Scope, viewer *userEntity.User, page string) (*feedEntity.Feed, error) {
	out := &feedEntity.Feed{Scope: scope}
	var filter postPort.FeedFilter

	switch scope.Kind {
	case feedEntity.Global:
	case feedEntity.Group:
		g, err := s.GroupRepository.FindBySlug(ctx, scope.Slug)
		if err != nil {
			return nil, err
		}
		out.Group = g
		filter.GroupID = &g.ID
		if out.Following, err = s.following(ctx, viewer, followerEntity.GroupTarget(g.ID)); err != nil {
			return nil, err
		}
	case feedEntity.Author:
		author, err := s.UserRepository.FindByUsername(ctx, scope.Username)
		if err != nil {
			return nil, err
		}
		out.Author = author
		filter.AuthorID = &author.ID
		if out.Following, err = s.following(ctx, viewer, followerEntity.AuthorTarget(author.ID)); err != nil {
			return nil, err
		}
	case feedEntity.Followed:
		if viewer == nil {
			out.Page = pagination.Page[*postEntity.Post]{Window: pagination.NewWindow(0, feedEntity.PageSize, page)}
			return out, nil
		}
		filter.FollowerID = &viewer.ID
	default:
		return nil, fmt.Errorf("unknown feed scope %d", scope.Kind)
	}

	total, err := s.PostRepository.CountFeed(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count feed: %w", err)
	}
	window := pagination.NewWindow(total, feedEntity.PageSize, page)
	posts, err := s.PostRepository.ListFeed(ctx, filter, window.Offset(), window.Size)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	out.Page = pagination.Page[*postEntity.Post]{Window: window, Items: posts}
	return out, nil
}

func (s *FeedService) following(ctx context.Context, viewer *userEntity.User, t followerEntity.Target) (bool, error) {
	if viewer == nil || s.Follows == nil {
		return false, nil
	}
	if t.Kind == followerEntity.AuthorKind && t.ID == viewer.ID {
		return false, nil
	}
	ok, err := s.Follows.IsFollowing(ctx, viewer, t)
	if err != nil {
		return false, fmt.Errorf("follow state: %w", err)
	}
	return ok, nil
}
